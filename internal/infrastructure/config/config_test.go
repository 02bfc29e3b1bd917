package config_test

import (
	"testing"
	"time"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "")
	t.Setenv("LEDGER_ACCOUNTS", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LedgerBackend != config.BackendMemory {
		t.Fatalf("expected memory backend by default, got %s", cfg.LedgerBackend)
	}

	want := config.AccountList{
		{ID: "1", Limit: 100000},
		{ID: "2", Limit: 80000},
		{ID: "3", Limit: 1000000},
		{ID: "4", Limit: 10000000},
		{ID: "5", Limit: 500000},
	}
	if len(cfg.Accounts) != len(want) {
		t.Fatalf("expected %d default accounts, got %v", len(want), cfg.Accounts)
	}
	for i := range want {
		if cfg.Accounts[i] != want[i] {
			t.Fatalf("account %d: expected %+v, got %+v", i, want[i], cfg.Accounts[i])
		}
	}

	if cfg.HistoryCapacity != domain.DefaultHistoryCapacity {
		t.Fatalf("expected history capacity %d, got %d", domain.DefaultHistoryCapacity, cfg.HistoryCapacity)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.IdempotencyEnabled || cfg.RateLimitRPS != 0 {
		t.Fatalf("expected optional middleware disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("LEDGER_ACCOUNTS", "alice:500, bob:0")
	t.Setenv("LEDGER_HISTORY_CAPACITY", "25")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("IDEMPOTENCY_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "50.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LedgerBackend != config.BackendPostgres {
		t.Fatalf("expected postgres backend, got %s", cfg.LedgerBackend)
	}

	if len(cfg.Accounts) != 2 || cfg.Accounts[0].ID != "alice" || cfg.Accounts[1].Limit != 0 {
		t.Fatalf("unexpected accounts: %+v", cfg.Accounts)
	}

	if cfg.HistoryCapacity != 25 {
		t.Fatalf("expected history capacity override, got %d", cfg.HistoryCapacity)
	}

	if cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom URLs, got %s %s", cfg.DatabaseURL, cfg.RedisURL)
	}

	if cfg.HTTPPort != "9999" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if !cfg.IdempotencyEnabled || cfg.RateLimitRPS != 50.5 {
		t.Fatalf("expected idempotency and rate limit overrides, got %v %v", cfg.IdempotencyEnabled, cfg.RateLimitRPS)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "LEDGER_BACKEND", "sqlite"},
		{"malformed account", "LEDGER_ACCOUNTS", "1=100"},
		{"negative limit", "LEDGER_ACCOUNTS", "1:-5"},
		{"duplicate account", "LEDGER_ACCOUNTS", "1:10,1:20"},
		{"non numeric limit", "LEDGER_ACCOUNTS", "1:ten"},
		{"zero history", "LEDGER_HISTORY_CAPACITY", "0"},
		{"negative rate", "RATE_LIMIT_RPS", "-1"},
		{"negative reconcile interval", "LEDGER_RECONCILE_INTERVAL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestValidateEmptyAccounts(t *testing.T) {
	cfg := &config.Config{LedgerBackend: config.BackendMemory, HistoryCapacity: 10}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty account list")
	}
}

func TestParseAccounts(t *testing.T) {
	accounts, err := config.ParseAccounts(" 1:100000 ,,2:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 2 || accounts[0] != (domain.AccountSpec{ID: "1", Limit: 100000}) {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
}
