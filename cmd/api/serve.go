package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pkordes/wandernote/internal/config"
	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/geocode"
	"github.com/pkordes/wandernote/internal/handler"
	"github.com/pkordes/wandernote/internal/logging"
	"github.com/pkordes/wandernote/internal/middleware"
	"github.com/pkordes/wandernote/internal/repo"
	"github.com/pkordes/wandernote/internal/service"
	"github.com/pkordes/wandernote/spec"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAuth(); err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	ctx := cmd.Context()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	// --- Services ---------------------------------------------------------
	rates := currency.Default()
	geocoder := geocode.New(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout)

	trips := repo.NewTripRepo(pool)
	destinations := repo.NewDestinationRepo(pool)
	activities := repo.NewActivityRepo(pool)
	expenses := repo.NewExpenseRepo(pool)
	notes := repo.NewNoteRepo(pool)

	srv := handler.NewServer(handler.Services{
		Trips:        service.NewTripService(trips, rates, cfg.DefaultBudgetCurrency),
		Destinations: service.NewDestinationService(destinations, geocoder),
		Activities:   service.NewActivityService(activities, destinations, geocoder, logger),
		Expenses:     service.NewExpenseService(expenses, trips, rates),
		Notes:        service.NewNoteService(notes, trips, destinations),
		Budgets:      service.NewBudgetService(trips, expenses, rates),
		Itineraries:  service.NewItineraryService(trips, destinations, activities),
		Exports:      service.NewExportService(trips, expenses, rates),
		Currencies:   rates,
	}, logger)

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- Router -----------------------------------------------------------
	router := handler.NewRouter(srv, handler.RouterConfig{
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Auth:           middleware.NewSupabaseAuth(cfg.SupabaseJWTSecret).Middleware,
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		OpenAPI:        spec.OpenAPI,
	})

	// --- HTTP Server ------------------------------------------------------
	// Write timeout leaves room for the geocoder, which is throttled to one
	// outbound request per second.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
