package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-kart/internal/catalog"
	"bistro-kart/internal/config"
	"bistro-kart/internal/database"
	"bistro-kart/internal/handler"
	"bistro-kart/internal/notify"
	"bistro-kart/internal/repository"
	"bistro-kart/internal/router"
	"bistro-kart/internal/service"

	"github.com/rs/zerolog"
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

	logger := config.NewLogger(cfg.Logger, os.Stdout)
	logger.Info().Msg("starting bistro-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.MigrationURL(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	shopCatalog, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var notifier notify.Notifier
	if cfg.Mail.Enabled {
		notifier = notify.NewSendGridNotifier(cfg.Mail.SendGridAPIKey, cfg.Mail.From, logger)
		logger.Info().Str("from", cfg.Mail.From).Msg("order confirmation mail enabled")
	} else {
		notifier = notify.NewNopNotifier(logger)
	}

	orderRepo := repository.NewOrderRepository(pool, logger)

	catalogService := service.NewCatalogService(shopCatalog, logger)
	orderService := service.NewOrderService(orderRepo, notifier, logger)

	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	mux := router.New(catalogHandler, orderHandler, router.Options{
		AllowedOrigin:  cfg.Server.AllowedOrigin,
		RequestTimeout: 15 * time.Second,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("shop_id", cfg.Shop.ID).
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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

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

// loadCatalog reads the menu document, from S3 when enabled with the local
// file as fallback.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Catalog, error) {
	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for the menu (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	shop, err := loader.Load(ctx, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	if shop.ShopID != cfg.Shop.ID {
		logger.Warn().
			Str("menu_shop_id", shop.ShopID).
			Str("configured_shop_id", cfg.Shop.ID).
			Msg("menu document belongs to a different shop id")
	}

	return catalog.New(*shop)
}
