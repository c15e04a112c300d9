package view

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/observability"
	"github.com/collisionviz/collision-dashboard/internal/render"
)

// CollisionSource supplies the memoized collision extracts.
type CollisionSource interface {
	Counties() ([]domain.CountyRecord, error)
	Hourly() ([]domain.HourlyRecord, error)
	Days() ([]domain.DayRecord, error)
	Preload() error
}

// Service runs one synchronous load-filter-render pass per view request.
// The record sets behind it are read-only after first load, so concurrent
// requests share them without locking.
type Service struct {
	source    CollisionSource
	geometry  domain.GeometryProvider
	stateFIPS string
	years     []string
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a view service over the given source and geometry provider.
// years enumerates the selector options in display order, sentinel excluded.
func New(source CollisionSource, geometry domain.GeometryProvider, stateFIPS string, years []string, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:    source,
		geometry:  geometry,
		stateFIPS: stateFIPS,
		years:     years,
		logger:    logger,
		metrics:   metrics,
	}
}

// YearOptions returns the year selector values: the every-year sentinel
// followed by each year in the configured range.
func (s *Service) YearOptions() []string {
	return append([]string{domain.AllYears}, s.years...)
}

// CheckReadiness reports whether all three extracts are loadable. The first
// call triggers the loads; afterwards it is a memoized no-op.
func (s *Service) CheckReadiness(_ context.Context) error {
	return s.source.Preload()
}

// CountyView renders the choropleth for the given year selection. A
// geometry fetch failure fails this view only; the bar chart views do not
// depend on it.
func (s *Service) CountyView(ctx context.Context, f domain.YearFilter) (render.ChoroplethView, error) {
	start := time.Now()

	recs, err := s.source.Counties()
	if err != nil {
		return render.ChoroplethView{}, s.fail("county", err)
	}

	geom, err := s.geometry.Boundaries(ctx, s.stateFIPS)
	if err != nil {
		return render.ChoroplethView{}, s.fail("county", fmt.Errorf("county view: %w", err))
	}

	v := render.Choropleth(domain.FilterCounties(recs, f), geom, f.String())
	s.succeed("county", start)
	return v, nil
}

// HourlyView renders the hour-of-day bar chart for the given year selection.
func (s *Service) HourlyView(f domain.YearFilter) (render.BarView, error) {
	start := time.Now()

	recs, err := s.source.Hourly()
	if err != nil {
		return render.BarView{}, s.fail("hourly", err)
	}

	v := render.HourlyBars(domain.FilterHourly(recs, f), f.String())
	s.succeed("hourly", start)
	return v, nil
}

// DayOfWeekView renders the day-of-week bar chart for the given year selection.
func (s *Service) DayOfWeekView(f domain.YearFilter) (render.BarView, error) {
	start := time.Now()

	recs, err := s.source.Days()
	if err != nil {
		return render.BarView{}, s.fail("day_of_week", err)
	}

	v := render.DayOfWeekBars(domain.FilterDays(recs, f), f.String())
	s.succeed("day_of_week", start)
	return v, nil
}

func (s *Service) succeed(view string, start time.Time) {
	s.metrics.ViewRequests.WithLabelValues(view, "success").Inc()
	s.metrics.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

func (s *Service) fail(view string, err error) error {
	s.metrics.ViewRequests.WithLabelValues(view, "error").Inc()
	s.logger.Error("view render failed", "view", view, "error", err)
	return err
}
