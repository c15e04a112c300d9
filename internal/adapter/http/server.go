package http

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/collisionviz/collision-dashboard/internal/domain"
	"github.com/collisionviz/collision-dashboard/internal/render"
)

// View produces the dashboard's chart payloads and selector options.
type View interface {
	YearOptions() []string
	CheckReadiness(ctx context.Context) error
	CountyView(ctx context.Context, f domain.YearFilter) (render.ChoroplethView, error)
	HourlyView(f domain.YearFilter) (render.BarView, error)
	DayOfWeekView(f domain.YearFilter) (render.BarView, error)
}

// Server exposes the dashboard pages, the view API, and the operational
// endpoints.
type Server struct {
	httpServer *http.Server
	views      View
	templates  *template.Template
	pages      []page
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server with all routes registered.
func NewServer(addr string, views View, logger *slog.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:     views,
		templates: templates,
		pages:     pages,
		logger:    logger,
	}
	s.httpServer.Handler = s.withRequestLogging(mux)

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /pages/{page}", s.handlePage)

	mux.HandleFunc("GET /api/views/county", s.handleCountyView)
	mux.HandleFunc("GET /api/views/hourly", s.handleHourlyView)
	mux.HandleFunc("GET /api/views/day-of-week", s.handleDayOfWeekView)

	mux.HandleFunc("GET /charts/hourly.png", s.handleHourlyPNG)
	mux.HandleFunc("GET /charts/day-of-week.png", s.handleDayOfWeekPNG)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s, nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.views.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
