package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/accountledger/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when a balance disagrees with its transactions.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balance does not match transactions")
	// ErrConsistencyUnsupported is returned by ledgers that discard old transactions.
	ErrConsistencyUnsupported = errors.New("consistency check requires a ledger that retains all transactions")
)

// ReconciliationResult compares a stored balance with the one recomputed
// from every retained transaction.
type ReconciliationResult struct {
	LastChecked       time.Time
	AccountID         string
	RecordedBalance   domain.Money
	CalculatedBalance domain.Money
}

// IsReconciled reports whether both balances agree.
func (r ReconciliationResult) IsReconciled() bool {
	return r.RecordedBalance == r.CalculatedBalance
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledger Ledger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledger Ledger) *LedgerUseCase {
	return &LedgerUseCase{
		ledger: ledger,
	}
}

// CheckConsistency verifies every account balance against its transactions.
// On ErrInconsistentLedger the drifting accounts are returned.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) ([]ReconciliationResult, error) {
	checker, ok := uc.ledger.(ConsistencyChecker)
	if !ok {
		return nil, ErrConsistencyUnsupported
	}

	results, err := checker.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	var drift []ReconciliationResult
	for _, r := range results {
		if !r.IsReconciled() {
			drift = append(drift, r)
		}
	}

	if len(drift) > 0 {
		return drift, ErrInconsistentLedger
	}

	return nil, nil
}
