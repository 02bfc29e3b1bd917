package domain

import (
	"fmt"
	"time"
)

// Account holds a balance that may go down to -Limit.
type Account struct {
	ID      string
	Balance Money
	Limit   Money
	History *History
}

// AccountSpec provisions one account at startup.
type AccountSpec struct {
	ID    string
	Limit Money
}

// Balance is the result of a successful transaction.
type Balance struct {
	Balance Money
	Limit   Money
}

// Statement is a consistent read of an account.
type Statement struct {
	GeneratedAt  time.Time
	Transactions []Transaction
	Balance      Money
	Limit        Money
}

// NewAccount creates an account with a zero balance.
func NewAccount(id string, limit Money, historyCapacity int) (*Account, error) {
	if limit < 0 {
		return nil, fmt.Errorf("account %s: limit must not be negative", id)
	}

	return &Account{
		ID:      id,
		Limit:   limit,
		History: NewHistory(historyCapacity),
	}, nil
}

// Headroom is the largest debit the account accepts right now.
func (a *Account) Headroom() (Money, error) {
	return a.Balance.Add(a.Limit)
}

// ValidateDebit checks that balance - amount stays at or above -Limit.
func (a *Account) ValidateDebit(amount Money) error {
	headroom, err := a.Headroom()
	if err != nil {
		// Headroom beyond MaxInt64 covers any debit.
		return nil
	}

	if headroom < amount {
		return ErrInsufficientLimit
	}

	return nil
}

// Apply validates and applies tx. On error the account is unchanged.
func (a *Account) Apply(tx Transaction) (Balance, error) {
	var (
		next Money
		err  error
	)

	switch tx.Kind {
	case KindCredit:
		next, err = a.Balance.Add(tx.Amount)
	case KindDebit:
		if err = a.ValidateDebit(tx.Amount); err == nil {
			next, err = a.Balance.Sub(tx.Amount)
		}
	default:
		err = &ValidationError{Field: "kind", Reason: ErrInvalidKind}
	}

	if err != nil {
		return a.current(), err
	}

	a.Balance = next
	a.History.Push(tx)

	return a.current(), nil
}

// Statement copies the balance and history.
func (a *Account) Statement(at time.Time) *Statement {
	return &Statement{
		Balance:      a.Balance,
		Limit:        a.Limit,
		Transactions: a.History.Snapshot(),
		GeneratedAt:  at,
	}
}

func (a *Account) current() Balance {
	return Balance{Balance: a.Balance, Limit: a.Limit}
}
