package usecase

import (
	"context"
	"time"

	"github.com/iho/accountledger/internal/domain"
)

// Ledger applies transactions to exactly one account and reads statements.
// Implementations serialize mutations per account and never across accounts.
type Ledger interface {
	// Submit applies tx to accountID atomically and returns the new balance.
	Submit(ctx context.Context, accountID string, tx domain.Transaction) (domain.Balance, error)
	// Statement returns balance, limit and the most recent transactions.
	Statement(ctx context.Context, accountID string) (*domain.Statement, error)
}

// ConsistencyChecker is implemented by ledgers that retain every transaction
// and can recompute balances from them.
type ConsistencyChecker interface {
	// Reconcile returns one result per account.
	Reconcile(ctx context.Context) ([]ReconciliationResult, error)
}

// MetricsRecorder receives ledger business metrics.
type MetricsRecorder interface {
	ObserveTransaction(kind domain.TransactionKind, outcome string, amount domain.Money, duration time.Duration)
	ObserveStatement(outcome string)
	SetBalance(accountID string, balance domain.Money)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not complete successfully.
	Release(ctx context.Context, key string) error
}
