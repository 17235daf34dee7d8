// Package main is the entry point for the itinerary API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/itinerary/api"
	"github.com/pkordes/itinerary/internal/category"
	"github.com/pkordes/itinerary/internal/config"
	"github.com/pkordes/itinerary/internal/enrich"
	"github.com/pkordes/itinerary/internal/handler"
	"github.com/pkordes/itinerary/internal/middleware"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/internal/routing"
	"github.com/pkordes/itinerary/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := repo.Connect(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("database connection established")

	trips := repo.NewTripRepo(pool)
	days := repo.NewDayRepo(pool)
	lodgings := repo.NewLodgingRepo(pool)

	// --- Services ---------------------------------------------------------
	// The dispatcher merges through the itinerary service, and the service
	// submits to the dispatcher, so the merge closure captures itinerary
	// before it is assigned.
	var itinerary *service.ItineraryService
	var enqueuer service.Enqueuer
	if cfg.EnrichmentEnabled() {
		pipeline := enrich.NewPipeline(
			routing.NewClient(cfg.RoutingURL, cfg.RoutingTimeout),
			enrich.WithMode(cfg.RoutingMode),
			enrich.WithConcurrency(cfg.EnrichConcurrency),
			enrich.WithLogger(logger),
		)
		merge := func(ctx context.Context, p enrich.Patch) error {
			return itinerary.MergeTravel(ctx, p)
		}
		dispatcher := enrich.NewDispatcher(pipeline, merge, logger)
		defer dispatcher.Close()
		enqueuer = dispatcher
		slog.Info("travel enrichment enabled", "routing_url", cfg.RoutingURL, "mode", cfg.RoutingMode)
	} else {
		slog.Info("travel enrichment disabled, ROUTING_URL not set")
	}
	itinerary = service.NewItineraryService(trips, days, lodgings, category.Default(), enqueuer, logger)

	srv := handler.NewServer(
		service.NewTripService(trips),
		itinerary,
		service.NewLodgingService(trips, lodgings),
		service.NewExportService(trips, days, lodgings, category.Default()),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics
	// → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPI)
	})
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing. Deferred
	// dispatcher.Close then cancels enrichment still in flight; those
	// patches are dropped and the next edit of the day routes it again.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		return
	}
	slog.Info("server stopped")
}
