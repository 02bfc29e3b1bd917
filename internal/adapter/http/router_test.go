package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/accountledger/internal/adapter/http/dto"
	"github.com/iho/accountledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/accountledger/internal/adapter/http/middleware"
	"github.com/iho/accountledger/internal/adapter/repository/memory"
	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/infrastructure/metrics"
	"github.com/iho/accountledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyOnlyOnTransactions(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	req := httptest.NewRequest(http.MethodPost, "/clientes/1/transacoes", strings.NewReader(`{"valor":1,"tipo":"c","descricao":"x"}`))
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.checks != 1 || store.updates != 1 {
		t.Fatalf("expected one check and one update, got %d/%d", store.checks, store.updates)
	}

	req = httptest.NewRequest(http.MethodGet, "/clientes/1/extrato", nil)
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if store.checks != 1 {
		t.Fatalf("expected statements to bypass idempotency, got %d checks", store.checks)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /clientes/{id}/transacoes",
		"GET /clientes/{id}/extrato",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered, have %v", route, seen)
		}
	}
}

// TestNewRouter_WorkedExample drives the in-memory ledger through HTTP.
func TestNewRouter_WorkedExample(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	post := func(id, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/clientes/"+id+"/transacoes", strings.NewReader(body))
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post("1", `{"valor": 1000, "tipo": "c", "descricao": "descricao"}`)
	assertBalance(t, rec, http.StatusOK, dto.BalanceResponse{Limit: 100000, Balance: 1000})

	rec = post("1", `{"valor": 1500, "tipo": "d", "descricao": "descricao"}`)
	assertBalance(t, rec, http.StatusOK, dto.BalanceResponse{Limit: 100000, Balance: -500})

	if rec = post("1", `{"valor": 100000, "tipo": "d", "descricao": "descricao"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for debit past the limit, got %d", rec.Code)
	}

	if rec = post("6", `{"valor": 1, "tipo": "c", "descricao": "x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", rec.Code)
	}

	if rec = post("1", `{"valor": 1, "tipo": "x", "descricao": "x"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown kind, got %d", rec.Code)
	}

	if rec = post("1", `{"valor": 1, "tipo": "c", "descricao": "01234567890"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for long description, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientes/1/extrato", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var statement dto.StatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &statement); err != nil {
		t.Fatalf("failed to decode statement: %v", err)
	}

	if statement.Balance.Total != -500 || statement.Balance.Limit != 100000 {
		t.Fatalf("unexpected balance block: %+v", statement.Balance)
	}
	if len(statement.Transactions) != 2 || statement.Transactions[0].Kind != "d" || statement.Transactions[1].Kind != "c" {
		t.Fatalf("expected debit then credit, got %+v", statement.Transactions)
	}
}

func TestNewRouter_ConsistencyUnsupportedOnMemory(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func assertBalance(t *testing.T, rec *httptest.ResponseRecorder, status int, want dto.BalanceResponse) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}

	var got dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	ledger, err := memory.NewLedger([]domain.AccountSpec{
		{ID: "1", Limit: 100000},
		{ID: "2", Limit: 80000},
	}, domain.DefaultHistoryCapacity)
	if err != nil {
		t.Fatalf("failed to build ledger: %v", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	cfg := RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(usecase.NewTransactionUseCase(ledger, m, zerolog.Nop())),
		LedgerHandler:      handler.NewLedgerHandler(usecase.NewLedgerUseCase(ledger)),
		HealthHandler:      handler.NewHealthHandler(),
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checks  int
	updates int
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checks++
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updates++
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
