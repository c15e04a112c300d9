package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jonboulle/clockwork"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/observability"
)

// Paths locates the three CSV extracts on disk.
type Paths struct {
	Choropleth string
	Hourly     string
	DayOfWeek  string
}

// Store loads the collision extracts and memoizes them per dataset kind.
// Each extract is read from disk at most once for the process lifetime;
// after a successful load the record sets are read-only, so callers may
// share them without copying. A failed load is memoized too: the extracts
// are static inputs, and a missing or malformed file is fatal for every
// view built on that kind.
type Store struct {
	paths   Paths
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	countyOnce sync.Once
	counties   []domain.CountyRecord
	countyErr  error

	hourlyOnce sync.Once
	hourly     []domain.HourlyRecord
	hourlyErr  error

	dayOnce sync.Once
	days    []domain.DayRecord
	dayErr  error

	mu       sync.Mutex
	loadedAt map[domain.DatasetKind]time.Time
}

// NewStore creates a Store over the given extract paths.
func NewStore(paths Paths, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		paths:    paths,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		loadedAt: make(map[domain.DatasetKind]time.Time),
	}
}

// Counties returns the choropleth extract, reading it on first call.
// Every returned FIPS code is zero-padded to the canonical width.
func (s *Store) Counties() ([]domain.CountyRecord, error) {
	s.countyOnce.Do(func() {
		s.counties, s.countyErr = s.loadCounties()
		s.finishLoad(domain.KindChoropleth, len(s.counties), s.countyErr)
	})
	return s.counties, s.countyErr
}

// Hourly returns the hour-of-day extract, reading it on first call.
func (s *Store) Hourly() ([]domain.HourlyRecord, error) {
	s.hourlyOnce.Do(func() {
		s.hourly, s.hourlyErr = s.loadHourly()
		s.finishLoad(domain.KindHourly, len(s.hourly), s.hourlyErr)
	})
	return s.hourly, s.hourlyErr
}

// Days returns the day-of-week extract, reading it on first call.
func (s *Store) Days() ([]domain.DayRecord, error) {
	s.dayOnce.Do(func() {
		s.days, s.dayErr = s.loadDays()
		s.finishLoad(domain.KindDayOfWeek, len(s.days), s.dayErr)
	})
	return s.days, s.dayErr
}

// Preload forces all three extracts into memory, returning the first load
// error encountered. On success the datasets-ready gauge flips to 1.
func (s *Store) Preload() error {
	if _, err := s.Counties(); err != nil {
		return err
	}
	if _, err := s.Hourly(); err != nil {
		return err
	}
	if _, err := s.Days(); err != nil {
		return err
	}
	s.metrics.DatasetsReady.Set(1)
	return nil
}

// LoadedAt reports when an extract was first loaded, if it has been.
func (s *Store) LoadedAt(kind domain.DatasetKind) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.loadedAt[kind]
	return at, ok
}

func (s *Store) finishLoad(kind domain.DatasetKind, rows int, err error) {
	if err != nil {
		s.metrics.DatasetLoads.WithLabelValues(string(kind), "error").Inc()
		s.logger.Error("extract load failed", "kind", kind, "error", err)
		return
	}

	now := s.clock.Now()
	s.mu.Lock()
	s.loadedAt[kind] = now
	s.mu.Unlock()

	s.metrics.DatasetLoads.WithLabelValues(string(kind), "success").Inc()
	s.metrics.DatasetRows.WithLabelValues(string(kind)).Set(float64(rows))
	s.logger.Info("extract loaded", "kind", kind, "rows", rows)
}

func (s *Store) loadCounties() ([]domain.CountyRecord, error) {
	df, err := s.readFrame(domain.KindChoropleth, s.paths.Choropleth, "county", "FIPS", "year_option", "killed_victims")
	if err != nil {
		return nil, err
	}

	counties := df.Col("county").Records()
	fips := df.Col("FIPS").Records()
	years := df.Col("year_option").Records()
	killed := df.Col("killed_victims").Records()

	recs := make([]domain.CountyRecord, len(counties))
	for i := range counties {
		n, err := parseCount(killed[i], i)
		if err != nil {
			return nil, fmt.Errorf("load choropleth extract: %w", err)
		}
		recs[i] = domain.CountyRecord{
			County:     counties[i],
			FIPS:       domain.PadFIPS(fips[i]),
			Year:       years[i],
			Fatalities: n,
		}
	}
	return recs, nil
}

func (s *Store) loadHourly() ([]domain.HourlyRecord, error) {
	df, err := s.readFrame(domain.KindHourly, s.paths.Hourly, "collision_hour", "year_option", "killed_victims")
	if err != nil {
		return nil, err
	}

	hours := df.Col("collision_hour").Records()
	years := df.Col("year_option").Records()
	killed := df.Col("killed_victims").Records()

	recs := make([]domain.HourlyRecord, len(hours))
	for i := range hours {
		hour, err := strconv.Atoi(hours[i])
		if err != nil {
			return nil, fmt.Errorf("load hourly extract: row %d: bad collision_hour %q", i, hours[i])
		}
		n, err := parseCount(killed[i], i)
		if err != nil {
			return nil, fmt.Errorf("load hourly extract: %w", err)
		}
		recs[i] = domain.HourlyRecord{Hour: hour, Year: years[i], Fatalities: n}
	}
	return recs, nil
}

func (s *Store) loadDays() ([]domain.DayRecord, error) {
	df, err := s.readFrame(domain.KindDayOfWeek, s.paths.DayOfWeek, "collision_day", "year_option", "killed_victims")
	if err != nil {
		return nil, err
	}

	days := df.Col("collision_day").Records()
	years := df.Col("year_option").Records()
	killed := df.Col("killed_victims").Records()

	recs := make([]domain.DayRecord, len(days))
	for i := range days {
		day, err := domain.NormalizeDay(days[i])
		if err != nil {
			return nil, fmt.Errorf("load day_of_week extract: row %d: %w", i, err)
		}
		n, err := parseCount(killed[i], i)
		if err != nil {
			return nil, fmt.Errorf("load day_of_week extract: %w", err)
		}
		recs[i] = domain.DayRecord{Day: day, Year: years[i], Fatalities: n}
	}
	return recs, nil
}

// readFrame opens one extract and parses it through gota. Every column is
// read as a string: FIPS codes and years must not be coerced to numbers,
// and count parsing stays explicit so malformed rows fail loudly.
func (s *Store) readFrame(kind domain.DatasetKind, path string, columns ...string) (dataframe.DataFrame, error) {
	start := s.clock.Now()

	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load %s extract: %w", kind, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load %s extract: parse %s: %w", kind, path, df.Error())
	}

	for _, col := range columns {
		if !hasColumn(df, col) {
			return dataframe.DataFrame{}, fmt.Errorf("load %s extract: %s is missing column %q", kind, path, col)
		}
	}

	s.metrics.DatasetLoadDuration.WithLabelValues(string(kind)).Observe(s.clock.Since(start).Seconds())
	return df, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func parseCount(s string, row int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad killed_victims %q", row, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("row %d: negative killed_victims %d", row, n)
	}
	return n, nil
}
