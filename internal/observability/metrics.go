package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard's load-filter-render pipeline.
type Metrics struct {
	DatasetLoads        *prometheus.CounterVec   // labels: kind, outcome={success,error}
	DatasetRows         *prometheus.GaugeVec     // labels: kind
	DatasetLoadDuration *prometheus.HistogramVec // labels: kind
	DatasetsReady       prometheus.Gauge

	ViewRequests *prometheus.CounterVec   // labels: view={county,hourly,day_of_week}, outcome={success,error}
	ViewDuration *prometheus.HistogramVec // labels: view

	// Geometry fetch metrics.
	GeometryFetches       *prometheus.CounterVec // labels: outcome={success,error}
	GeometryFetchDuration prometheus.Histogram
	GeometryCache         *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collision_dashboard",
			Name:      "dataset_loads_total",
			Help:      "CSV extract load attempts by dataset kind and outcome.",
		}, []string{"kind", "outcome"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "collision_dashboard",
			Name:      "dataset_rows",
			Help:      "Rows held in memory per dataset kind after load.",
		}, []string{"kind"}),
		DatasetLoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collision_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a CSV extract load, including parsing.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"kind"}),
		DatasetsReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collision_dashboard",
			Name:      "datasets_ready",
			Help:      "1 when all extracts are loaded and views can render, 0 otherwise.",
		}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collision_dashboard",
			Name:      "view_requests_total",
			Help:      "View render requests by view and outcome.",
		}, []string{"view", "outcome"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collision_dashboard",
			Name:      "view_duration_seconds",
			Help:      "Duration of a complete load-filter-render pass.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"view"}),
		GeometryFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collision_dashboard",
			Name:      "geometry_fetches_total",
			Help:      "County boundary fetches by outcome.",
		}, []string{"outcome"}),
		GeometryFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collision_dashboard",
			Name:      "geometry_fetch_duration_seconds",
			Help:      "County boundary HTTP fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		GeometryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collision_dashboard",
			Name:      "geometry_cache_total",
			Help:      "Geometry cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetRows,
		m.DatasetLoadDuration,
		m.DatasetsReady,
		m.ViewRequests,
		m.ViewDuration,
		m.GeometryFetches,
		m.GeometryFetchDuration,
		m.GeometryCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetLoads:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collision_dashboard", Name: "dataset_loads_total"}, []string{"kind", "outcome"}),
		DatasetRows:           prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "collision_dashboard", Name: "dataset_rows"}, []string{"kind"}),
		DatasetLoadDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "collision_dashboard", Name: "dataset_load_duration_seconds"}, []string{"kind"}),
		DatasetsReady:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "collision_dashboard", Name: "datasets_ready"}),
		ViewRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collision_dashboard", Name: "view_requests_total"}, []string{"view", "outcome"}),
		ViewDuration:          prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "collision_dashboard", Name: "view_duration_seconds"}, []string{"view"}),
		GeometryFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collision_dashboard", Name: "geometry_fetches_total"}, []string{"outcome"}),
		GeometryFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "collision_dashboard", Name: "geometry_fetch_duration_seconds"}),
		GeometryCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collision_dashboard", Name: "geometry_cache_total"}, []string{"result"}),
	}
}
