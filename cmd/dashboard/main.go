package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/collisionviz/collision-dashboard/internal/adapter/geometry"
	httpadapter "github.com/collisionviz/collision-dashboard/internal/adapter/http"
	"github.com/collisionviz/collision-dashboard/internal/config"
	"github.com/collisionviz/collision-dashboard/internal/dataset"
	"github.com/collisionviz/collision-dashboard/internal/observability"
	"github.com/collisionviz/collision-dashboard/internal/view"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := dataset.NewStore(dataset.Paths{
		Choropleth: cfg.ExtractPath(cfg.ChoroplethFile),
		Hourly:     cfg.ExtractPath(cfg.HourlyFile),
		DayOfWeek:  cfg.ExtractPath(cfg.DayOfWeekFile),
	}, clockwork.NewRealClock(), logger, metrics)

	client := geometry.NewClient(cfg.GeometryURL, cfg.GeometryTimeout, metrics, logger)
	boundaries := geometry.NewCachedProvider(client, cfg.GeometryCacheSize, metrics)

	views := view.New(store, boundaries, cfg.GeometryStateFIPS, cfg.Years(), logger, metrics)

	srv, err := httpadapter.NewServer(cfg.HTTPAddr, views, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the extracts so the first analysis view doesn't pay the load.
	go func() {
		if err := store.Preload(); err != nil {
			logger.Error("extract preload failed", "error", err)
		}
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
