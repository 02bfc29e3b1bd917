package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Validation constants
const (
	MaxDescriptionLength = 10 // characters, not bytes
	MaxAccountIDLength   = 64
)

var accountIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: ErrInvalidAmount}
	}
	return nil
}

// ValidateKind rejects anything but credit or debit.
func ValidateKind(kind TransactionKind) error {
	if !kind.Valid() {
		return &ValidationError{Field: "kind", Reason: ErrInvalidKind}
	}
	return nil
}

// ValidateDescription requires 1 to MaxDescriptionLength characters.
func ValidateDescription(description string) error {
	if !utf8.ValidString(description) {
		return &ValidationError{Field: "description", Reason: ErrInvalidDescription}
	}

	n := utf8.RuneCountInString(description)
	if n < 1 || n > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: ErrInvalidDescription}
	}

	return nil
}

// ValidateAccountID checks the format of a configured account identifier.
func ValidateAccountID(id string) error {
	if id == "" || len(id) > MaxAccountIDLength || !accountIDRegex.MatchString(id) {
		return fmt.Errorf("invalid account id %q", id)
	}
	return nil
}
