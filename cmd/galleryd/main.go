// Command galleryd serves the plot gallery over HTTP: the catalog under
// /entries, on-demand PNG rendering under /render/{entry}, plus health,
// readiness, and Prometheus metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-plot-gallery/internal/config"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery"
	"github.com/couchcryptid/climate-plot-gallery/internal/gallery/entries"
	"github.com/couchcryptid/climate-plot-gallery/internal/mapfeature"
	"github.com/couchcryptid/climate-plot-gallery/internal/observability"
	"github.com/couchcryptid/climate-plot-gallery/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Land polygons are optional; maps render bare without them.
	var features *mapfeature.Set
	if cfg.LandShapefile != "" {
		features, err = mapfeature.LoadLand(cfg.LandShapefile)
		if err != nil {
			logger.Error("failed to load land shapefile", "path", cfg.LandShapefile, "error", err)
			os.Exit(1)
		}
		logger.Info("land features loaded", "path", cfg.LandShapefile, "polygons", len(features.Land))
	} else {
		logger.Info("no land shapefile configured, maps render without land fill")
	}

	env := &gallery.Env{
		DataDir:  cfg.DataDir,
		OutDir:   cfg.OutDir,
		Features: features,
		Logger:   logger,
	}
	renderer := gallery.NewRenderer(entries.All(), env, logger, metrics)

	if err := renderer.CheckInputs(); err != nil {
		logger.Warn("input datasets incomplete, readiness will fail", "error", err)
	}

	srv := server.NewServer(cfg.HTTPAddr, renderer, cfg.RenderTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
