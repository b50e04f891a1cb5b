package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-scout/internal/auth"
	"price-scout/internal/catalog"
	"price-scout/internal/config"
	"price-scout/internal/database"
	"price-scout/internal/handler"
	"price-scout/internal/metrics"
	"price-scout/internal/pricing"
	"price-scout/internal/repository"
	"price-scout/internal/router"
	"price-scout/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting price-scout API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	storeRepo := repository.NewStoreRepository(pool, logger)
	observationRepo := repository.NewObservationRepository(pool, logger)
	comparisonRepo := repository.NewComparisonRepository(pool, logger)

	// Seed the default global categories
	if cfg.Catalog.SeedEnabled {
		fileLoader := catalog.NewFileLoader(logger)
		var catalogLoader catalog.Loader = fileLoader

		if cfg.Catalog.S3Enabled {
			s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.Bucket, cfg.Catalog.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
			} else {
				catalogLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.Prefix, true, logger)
			}
		}

		seeder := catalog.NewSeeder(categoryRepo, catalogLoader, catalog.SeederConfig{
			FilePaths: cfg.Catalog.Files,
		}, logger)
		if err := seeder.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// Initialize the comparator with the configured tie policy
	tiePolicy, err := pricing.ParseTiePolicy(cfg.Pricing.TiePolicy)
	if err != nil {
		return fmt.Errorf("failed to parse tie policy: %w", err)
	}
	comparator := pricing.NewComparator(tiePolicy)

	// Initialize metrics and token verification
	m := metrics.New()
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, logger)
	storeService := service.NewStoreService(storeRepo, logger)
	observationService := service.NewObservationService(observationRepo, storeRepo, categoryRepo, logger)
	comparisonService := service.NewComparisonService(observationRepo, comparisonRepo, categoryRepo, comparator, m, logger)

	// Initialize HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	storeHandler := handler.NewStoreHandler(storeService, logger)
	observationHandler := handler.NewObservationHandler(observationService, logger)
	comparisonHandler := handler.NewComparisonHandler(comparisonService, logger)

	// Initialize router
	mux := router.New(
		categoryHandler,
		storeHandler,
		observationHandler,
		comparisonHandler,
		verifier,
		m,
		cfg.Metrics.Enabled,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
