package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/accountledger/internal/adapter/http"
	"github.com/iho/accountledger/internal/adapter/http/handler"
	"github.com/iho/accountledger/internal/adapter/http/middleware"
	"github.com/iho/accountledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/accountledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/accountledger/internal/adapter/repository/redis"
	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/infrastructure/config"
	"github.com/iho/accountledger/internal/infrastructure/logger"
	"github.com/iho/accountledger/internal/infrastructure/metrics"
	"github.com/iho/accountledger/internal/infrastructure/postgres"
	"github.com/iho/accountledger/internal/infrastructure/redis"
	"github.com/iho/accountledger/internal/usecase"
)

const rateLimiterCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics.RateLimitHits)
		go cleanupLimiters(ctx, rateLimiter)
	}

	if checker, ok := deps.ledger.(usecase.ConsistencyChecker); ok && cfg.ReconcileInterval > 0 {
		reconciler := usecase.NewReconciliationUseCase(checker, appMetrics, logger)
		go func() {
			if err := reconciler.Run(ctx, cfg.ReconcileInterval); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("reconciler stopped")
			}
		}()
	}

	transactionUC := usecase.NewTransactionUseCase(deps.ledger, appMetrics, logger)
	ledgerUC := usecase.NewLedgerUseCase(deps.ledger)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(deps.checks...),
		Metrics:            appMetrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		IdempotencyStore:   deps.idempotency,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             logger,
	})

	server := newServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("port", cfg.HTTPPort).
			Str("backend", cfg.LedgerBackend).
			Int("accounts", len(cfg.Accounts)).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// dependencies are the backends selected by configuration.
type dependencies struct {
	ledger      usecase.Ledger
	idempotency usecase.IdempotencyStore
	checks      []handler.Check
	closers     []func()
}

// Close releases backends in reverse order of creation.
func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*dependencies, error) {
	deps := &dependencies{}
	accounts := []domain.AccountSpec(cfg.Accounts)

	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		if cfg.DatabaseAutoMigrate {
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.DatabaseMigrationsPath); err != nil {
				return nil, err
			}
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		deps.closers = append(deps.closers, pool.Close)
		deps.checks = append(deps.checks, handler.Check{Name: "postgres", Ping: pool.Ping})
		logger.Info().Msg("connected to postgres")

		ledger := postgresRepo.NewLedger(pool, cfg.HistoryCapacity, cfg.DatabaseTimeout, logger)
		if err := ledger.Provision(ctx, accounts); err != nil {
			deps.Close()
			return nil, err
		}
		deps.ledger = ledger
	default:
		ledger, err := memory.NewLedger(accounts, cfg.HistoryCapacity)
		if err != nil {
			return nil, err
		}
		logger.Info().Strs("accounts", ledger.AccountIDs()).Msg("in-memory ledger ready")
		deps.ledger = ledger
	}

	if cfg.IdempotencyEnabled {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.closers = append(deps.closers, func() { _ = client.Close() })
		deps.checks = append(deps.checks, handler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redis.Ping(ctx, client) },
		})
		deps.idempotency = redisRepo.NewIdempotencyStore(client)
		logger.Info().Msg("connected to redis")
	}

	return deps, nil
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(rateLimiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(rateLimiterCleanupInterval)
		}
	}
}
