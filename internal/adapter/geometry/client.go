package geometry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/observability"
)

// Client implements domain.GeometryProvider against a remote GeoJSON
// resource holding US county boundary polygons keyed by 5-digit FIPS.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a county boundary client for the given resource URL.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Boundaries fetches the county FeatureCollection. A non-empty stateFIPS
// keeps only features whose FIPS id carries that state prefix, which trims
// the nationwide file down to what the choropleth actually draws.
func (c *Client) Boundaries(ctx context.Context, stateFIPS string) (domain.CountyGeometry, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.CountyGeometry{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeometryFetches.WithLabelValues("error").Inc()
		return domain.CountyGeometry{}, fmt.Errorf("fetch county boundaries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeometryFetches.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.CountyGeometry{}, fmt.Errorf("geometry resource error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.GeometryFetches.WithLabelValues("error").Inc()
		return domain.CountyGeometry{}, fmt.Errorf("read geometry response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.metrics.GeometryFetches.WithLabelValues("error").Inc()
		return domain.CountyGeometry{}, fmt.Errorf("decode geometry: %w", err)
	}

	if stateFIPS != "" {
		fc = filterByState(fc, stateFIPS)
	}

	out, err := json.Marshal(fc)
	if err != nil {
		return domain.CountyGeometry{}, fmt.Errorf("encode geometry: %w", err)
	}

	c.metrics.GeometryFetches.WithLabelValues("success").Inc()
	c.metrics.GeometryFetchDuration.Observe(time.Since(start).Seconds())
	c.logger.Info("county boundaries fetched",
		"features", len(fc.Features),
		"state_fips", stateFIPS,
		"bytes", len(out),
	)

	return domain.CountyGeometry{GeoJSON: out, Features: len(fc.Features)}, nil
}

func filterByState(fc *geojson.FeatureCollection, stateFIPS string) *geojson.FeatureCollection {
	filtered := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if strings.HasPrefix(featureFIPS(f), stateFIPS) {
			filtered.AddFeature(f)
		}
	}
	return filtered
}

// featureFIPS extracts a feature's FIPS id as a canonical padded string.
// The plotly-datasets file uses string ids, but numeric ids show up in
// other county boundary sources.
func featureFIPS(f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		return domain.PadFIPS(id)
	case float64:
		return domain.PadFIPS(strconv.Itoa(int(id)))
	default:
		return ""
	}
}
