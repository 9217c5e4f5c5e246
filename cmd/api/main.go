package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concurrent-ledger/config"
	httpHandler "concurrent-ledger/internal/adapter/http/handler"
	memStorage "concurrent-ledger/internal/adapter/storage/memory"
	pgStorage "concurrent-ledger/internal/adapter/storage/postgres"
	redisStorage "concurrent-ledger/internal/adapter/storage/redis"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/internal/locking"
	"concurrent-ledger/internal/metrics"
	"concurrent-ledger/internal/service"
	"concurrent-ledger/internal/transfer"
	"concurrent-ledger/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("store", cfg.Store.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting Concurrent Ledger")

	ctx := context.Background()

	metrics.Init()

	// Select the account store backend
	var (
		store          ports.AccountStore
		healthCheckers []ports.HealthChecker
	)
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		pgStore := pgStorage.NewAccountStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to create schema")
		}
		store = pgStore
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	case "memory":
		memStore := memStorage.NewAccountStore()
		store = memStore
		healthCheckers = append(healthCheckers, memStorage.NewHealthCheck(memStore))
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown store backend")
	}

	// Redis is optional; without it rate limiting is disabled
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Shared lock manager: transfers and single-account writes serialize
	// on the same per-account mutex
	locks := locking.NewManager()

	// Fee policy from config
	var fees transfer.FeePolicy = transfer.ZeroFee{}
	if cfg.Fee.Percent != 0 || cfg.Fee.Fixed != "0" {
		fixed, err := decimal.NewFromString(cfg.Fee.Fixed)
		if err != nil {
			log.Fatal().Err(err).Str("fixed", cfg.Fee.Fixed).Msg("Invalid fixed fee")
		}
		fees = transfer.PercentFee{
			Percent: decimal.NewFromFloat(cfg.Fee.Percent),
			Fixed:   fixed,
		}
	}

	// Initialize business services
	accountSvc := service.NewAccountService(store, locks, log)
	transferSvc := service.NewTransferService(store, locks, fees, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AccountSvc:     accountSvc,
		TransferSvc:    transferSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
