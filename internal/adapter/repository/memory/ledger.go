// Package memory implements the ledger on process memory. State is lost when
// the process exits.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/iho/accountledger/internal/domain"
)

type accountSlot struct {
	mu      sync.RWMutex
	account *domain.Account
}

// Ledger implements usecase.Ledger with one RWMutex per account. The registry
// map is built once and never written afterwards, so lookups take no lock.
type Ledger struct {
	accounts map[string]*accountSlot
	now      func() time.Time
}

// NewLedger builds the fixed registry.
func NewLedger(specs []domain.AccountSpec, historyCapacity int) (*Ledger, error) {
	accounts := make(map[string]*accountSlot, len(specs))

	for _, spec := range specs {
		if _, exists := accounts[spec.ID]; exists {
			return nil, fmt.Errorf("duplicate account %s", spec.ID)
		}

		account, err := domain.NewAccount(spec.ID, spec.Limit, historyCapacity)
		if err != nil {
			return nil, err
		}

		accounts[spec.ID] = &accountSlot{account: account}
	}

	return &Ledger{
		accounts: accounts,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Submit applies tx under the account's write lock.
func (l *Ledger) Submit(_ context.Context, accountID string, tx domain.Transaction) (domain.Balance, error) {
	slot, ok := l.accounts[accountID]
	if !ok {
		return domain.Balance{}, domain.ErrAccountNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	return slot.account.Apply(tx)
}

// Statement reads the account under its read lock.
func (l *Ledger) Statement(_ context.Context, accountID string) (*domain.Statement, error) {
	slot, ok := l.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	slot.mu.RLock()
	defer slot.mu.RUnlock()

	return slot.account.Statement(l.now()), nil
}

// AccountIDs lists the registry in sorted order.
func (l *Ledger) AccountIDs() []string {
	return slices.Sorted(maps.Keys(l.accounts))
}
