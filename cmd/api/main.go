package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeteria-dash/internal/config"
	"cafeteria-dash/internal/database"
	"cafeteria-dash/internal/handler"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/router"
	"cafeteria-dash/internal/seed"
	"cafeteria-dash/internal/service"
	"cafeteria-dash/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("seed_source", cfg.Seed.Source).Msg("starting cafeteria dashboard server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := loadSeed(ctx, cfg, logger)
	if err != nil {
		return err
	}

	clock := time.Now
	h, today, err := buildHandler(data, cfg.Auth.StaffAPIKey, clock, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info().Str("address", server.Addr).Str("today", today).Msg("HTTP server started")
	return serve(ctx, server, logger)
}

// loadSeed reads the startup data once. Loader resources are released before
// the server starts.
func loadSeed(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*seed.Seed, error) {
	loader, closeLoader, err := newSeedLoader(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize seed loader: %w", err)
	}
	defer closeLoader()

	data, err := loader.Load(ctx, cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}
	return data, nil
}

// buildHandler wires the store, services, renderer and handlers into the
// routed HTTP handler. It also reports the day key the dashboard opens on.
func buildHandler(data *seed.Seed, staffKey string, clock func() time.Time, logger zerolog.Logger) (http.Handler, string, error) {
	st := store.New(data, clock, logger)

	stats := service.NewAggregationService(st, clock, logger)
	feedback := service.NewFeedbackService(st, stats, logger)
	waste := service.NewWasteService(st, stats, logger)

	renderer, err := render.NewRenderer(stats, render.NewChartBoard(clock), clock, logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize renderer: %w", err)
	}

	mux := router.New(
		handler.NewDashboardHandler(feedback, waste, renderer, logger),
		handler.NewFeedbackHandler(feedback, stats, renderer, logger),
		handler.NewWasteHandler(waste, renderer, logger),
		handler.NewStatsHandler(stats, renderer, logger),
		staffKey,
		logger,
	)
	return mux, string(stats.CurrentDay()), nil
}

// serve runs the server until it fails or ctx is cancelled by a signal, then
// drains in-flight requests.
func serve(ctx context.Context, server *http.Server, logger zerolog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server gracefully")
		if closeErr := server.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close server")
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server shutdown completed")
	return nil
}

// newSeedLoader picks the loader for the configured seed source. The returned
// close func releases any connection the loader holds and is always non-nil.
func newSeedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (seed.Loader, func(), error) {
	noop := func() {}

	switch cfg.Seed.Source {
	case config.SeedFile:
		return seed.NewFileLoader(logger), noop, nil

	case config.SeedS3:
		remote, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("S3 unavailable, seeding from the local file only")
			remote = nil
		}
		return seed.NewFallbackLoader(remote, seed.NewFileLoader(logger), cfg.S3.Prefix, logger), noop, nil

	case config.SeedPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		return seed.NewPostgresLoader(pool, logger), pool.Close, nil

	default:
		logger.Info().Msg("using built-in demo seed")
		return seed.NewBuiltinLoader(), noop, nil
	}
}
