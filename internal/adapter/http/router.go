package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/accountledger/internal/adapter/http/handler"
	"github.com/iho/accountledger/internal/adapter/http/middleware"
	"github.com/iho/accountledger/internal/infrastructure/metrics"
	"github.com/iho/accountledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler

	// Optional. Nil disables the feature.
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter

	IdempotencyTTL time.Duration
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// Account routes keep the public /clientes paths.
	r.Route("/clientes/{id}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
			}
			r.Post("/transacoes", cfg.TransactionHandler.Create)
		})
		r.Get("/extrato", cfg.TransactionHandler.Statement)
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
