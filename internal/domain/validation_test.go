package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTransaction(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 17, 2, 34, 41, 0, time.FixedZone("BRT", -3*3600))

	tests := []struct {
		name        string
		amount      int64
		kind        TransactionKind
		description string
		wantErr     error
	}{
		{name: "valid credit", amount: 1000, kind: KindCredit, description: "salario"},
		{name: "valid debit ten chars", amount: 1, kind: KindDebit, description: strings.Repeat("x", 10)},
		{name: "multibyte description counts characters", amount: 1, kind: KindDebit, description: "pão de mel"},
		{name: "zero amount", amount: 0, kind: KindCredit, description: "x", wantErr: ErrInvalidAmount},
		{name: "negative amount", amount: -5, kind: KindCredit, description: "x", wantErr: ErrInvalidAmount},
		{name: "unknown kind", amount: 1, kind: "x", description: "x", wantErr: ErrInvalidKind},
		{name: "empty kind", amount: 1, kind: "", description: "x", wantErr: ErrInvalidKind},
		{name: "empty description", amount: 1, kind: KindDebit, description: "", wantErr: ErrInvalidDescription},
		{name: "long description", amount: 1, kind: KindDebit, description: strings.Repeat("x", 11), wantErr: ErrInvalidDescription},
		{name: "invalid utf8", amount: 1, kind: KindDebit, description: "\xff", wantErr: ErrInvalidDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.amount, tt.kind, tt.description, at)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !errors.Is(err, ErrInvalidTransaction) {
					t.Fatalf("expected validation error to match ErrInvalidTransaction, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tx.Amount != Money(tt.amount) || tx.Kind != tt.kind || tx.Description != tt.description {
				t.Fatalf("unexpected transaction %+v", tx)
			}
			if !tx.OccurredAt.Equal(at) || tx.OccurredAt.Location() != time.UTC {
				t.Fatalf("expected occurred_at normalised to UTC, got %v", tx.OccurredAt)
			}
		})
	}
}

func TestNewTransaction_DefaultsOccurredAt(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	tx, err := NewTransaction(1, KindCredit, "x", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tx.OccurredAt.Before(before) || tx.OccurredAt.After(time.Now().UTC()) {
		t.Fatalf("expected ingestion time, got %v", tx.OccurredAt)
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := ValidateAmount(0)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "amount" {
		t.Fatalf("expected ValidationError on amount, got %v", err)
	}

	if !strings.Contains(err.Error(), "invalid amount") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateAccountID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"1", "acc-42", "A_b"} {
		if err := ValidateAccountID(id); err != nil {
			t.Fatalf("expected %q valid, got %v", id, err)
		}
	}

	for _, id := range []string{"", "a b", "1;2", strings.Repeat("a", MaxAccountIDLength+1)} {
		if err := ValidateAccountID(id); err == nil {
			t.Fatalf("expected %q invalid", id)
		}
	}
}
