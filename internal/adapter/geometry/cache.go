package geometry

import (
	"context"
	"sync"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/observability"
)

// CachedProvider wraps a GeometryProvider with an in-memory LRU cache keyed
// by state prefix. The boundary file is static upstream, so entries live
// for the process lifetime.
type CachedProvider struct {
	inner   domain.GeometryProvider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a geometry provider.
func NewCachedProvider(inner domain.GeometryProvider, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) Boundaries(ctx context.Context, stateFIPS string) (domain.CountyGeometry, error) {
	key := "state:" + stateFIPS
	if stateFIPS == "" {
		key = "us"
	}

	if result, ok := c.cache.get(key); ok {
		c.metrics.GeometryCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeometryCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Boundaries(ctx, stateFIPS)
	if err != nil {
		return result, err
	}
	// Only cache non-empty collections so a transient upstream glitch that
	// yields zero features can be retried.
	if result.Features > 0 {
		c.cache.put(key, result)
	}
	return result, nil
}

// lruCache is a simple thread-safe LRU cache for county geometry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.CountyGeometry
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.CountyGeometry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.CountyGeometry{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.CountyGeometry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
