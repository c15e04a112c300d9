package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Locations of the three CSV extracts.
	DataDir        string
	ChoroplethFile string
	HourlyFile     string
	DayOfWeekFile  string

	// Year selector bounds (inclusive).
	YearStart int
	YearEnd   int

	// County boundary geometry configuration.
	GeometryURL       string
	GeometryTimeout   time.Duration
	GeometryCacheSize int
	GeometryStateFIPS string
}

// Default geometry source: the plotly-datasets nationwide county boundary
// file, keyed by 5-digit FIPS.
const defaultGeometryURL = "https://raw.githubusercontent.com/plotly/datasets/master/geojson-counties-fips.json"

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geometryTimeout, err := parsePositiveDuration("GEOMETRY_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	yearStart, err := parseInt("YEAR_START", 2001)
	if err != nil {
		return nil, err
	}
	yearEnd, err := parseInt("YEAR_END", 2021)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseInt("GEOMETRY_CACHE_SIZE", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataDir:        envOrDefault("DATA_DIR", "data"),
		ChoroplethFile: envOrDefault("CHOROPLETH_FILE", "choropleth.csv"),
		HourlyFile:     envOrDefault("HOURLY_FILE", "hourly.csv"),
		DayOfWeekFile:  envOrDefault("DAY_OF_WEEK_FILE", "day_of_week.csv"),

		YearStart: yearStart,
		YearEnd:   yearEnd,

		GeometryURL:       envOrDefault("GEOMETRY_URL", defaultGeometryURL),
		GeometryTimeout:   geometryTimeout,
		GeometryCacheSize: cacheSize,
		GeometryStateFIPS: envOrDefault("GEOMETRY_STATE_FIPS", "06"),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.GeometryURL == "" {
		return nil, errors.New("GEOMETRY_URL is required")
	}
	if cfg.YearStart > cfg.YearEnd {
		return nil, fmt.Errorf("YEAR_START (%d) must not exceed YEAR_END (%d)", cfg.YearStart, cfg.YearEnd)
	}
	if cfg.GeometryCacheSize <= 0 {
		return nil, errors.New("GEOMETRY_CACHE_SIZE must be positive")
	}

	return cfg, nil
}

// ExtractPath returns the full path of one extract file.
func (c *Config) ExtractPath(file string) string {
	return filepath.Join(c.DataDir, file)
}

// Years enumerates the configured year range as the string values the
// extracts store.
func (c *Config) Years() []string {
	years := make([]string, 0, c.YearEnd-c.YearStart+1)
	for y := c.YearStart; y <= c.YearEnd; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
