package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/recipelift/backend/config"
	httpDelivery "github.com/recipelift/backend/internal/delivery/http"
	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/infrastructure/cache"
	"github.com/recipelift/backend/internal/infrastructure/fetch"
	"github.com/recipelift/backend/internal/reference"
	"github.com/recipelift/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting RecipeLift backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	cacheRepo, closeCache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	fetcher := fetch.NewClient(fetch.Config{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.Fetch.Timeout,
		MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Burst:             cfg.Fetch.Burst,
	}, logger)

	// Initialize usecase layer
	importService := usecase.NewImportService(
		cacheRepo,
		fetcher,
		reference.Load(),
		logger,
		usecase.ImportServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Match: usecase.MatchConfig{
				EnableFuzzyMatching: cfg.Matching.EnableFuzzyMatching,
				FuzzyEditDistance:   cfg.Matching.FuzzyEditDistance,
				EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
			},
		},
	)

	logger.Info("matching configured",
		zap.Bool("fuzzy", cfg.Matching.EnableFuzzyMatching),
		zap.Int("edit_distance", cfg.Matching.FuzzyEditDistance),
		zap.Bool("debug", cfg.Matching.EnableDebugLogging),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(importService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newCache builds the configured cache backend and its cleanup func
func newCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, "recipelift:", logger)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() { redisCache.Close() }, nil
	default:
		memoryCache := cache.NewMemoryCache()
		return memoryCache, func() { memoryCache.Close() }, nil
	}
}
