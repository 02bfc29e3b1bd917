package domain

import "time"

// TransactionKind tells whether a transaction adds to or removes from a balance.
type TransactionKind string

const (
	KindCredit TransactionKind = "c"
	KindDebit  TransactionKind = "d"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// Transaction is an accepted, immutable balance movement.
type Transaction struct {
	OccurredAt  time.Time
	Kind        TransactionKind
	Description string
	Amount      Money
}

// NewTransaction validates the fields and builds a Transaction. A zero
// occurredAt is replaced by the current UTC time.
func NewTransaction(amount int64, kind TransactionKind, description string, occurredAt time.Time) (Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, err
	}

	if err := ValidateKind(kind); err != nil {
		return Transaction{}, err
	}

	if err := ValidateDescription(description); err != nil {
		return Transaction{}, err
	}

	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return Transaction{
		Amount:      Money(amount),
		Kind:        kind,
		Description: description,
		OccurredAt:  occurredAt.UTC(),
	}, nil
}
