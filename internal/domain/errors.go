package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientLimit = errors.New("debit exceeds available limit")
	ErrAmountOverflow    = errors.New("amount overflows account balance")

	// Transaction errors
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrInvalidKind        = errors.New("kind must be credit or debit")
	ErrInvalidDescription = errors.New("description must be 1 to 10 characters")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInternal         = errors.New("internal error")
)

// ValidationError describes a malformed transaction field. It matches both
// ErrInvalidTransaction and the field specific sentinel.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidTransaction, e.Reason}
}

// IsBusinessRule reports whether err is an expected refusal rather than a fault.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientLimit) || errors.Is(err, ErrAmountOverflow)
}
