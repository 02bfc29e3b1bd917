package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/usecase"
)

// CreateTransactionRequest is the body of POST /clientes/{id}/transacoes.
type CreateTransactionRequest struct {
	Amount      json.RawMessage `json:"valor"`
	Kind        string          `json:"tipo"`
	Description string          `json:"descricao"`
	OccurredAt  *time.Time      `json:"realizada_em,omitempty"`
}

// ToUseCaseInput converts to use case input. valor must be a bare JSON
// integer: strings, fractions and exponents are rejected.
func (r *CreateTransactionRequest) ToUseCaseInput(accountID string) (usecase.CreateTransactionInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		OccurredAt:  r.OccurredAt,
		AccountID:   accountID,
		Kind:        r.Kind,
		Description: r.Description,
		Amount:      amount,
	}, nil
}

func parseAmount(raw json.RawMessage) (int64, error) {
	invalid := &domain.ValidationError{Field: "amount", Reason: domain.ErrInvalidAmount}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.ContainsAny(raw, `".eEn`) {
		return 0, invalid
	}

	amount, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, invalid
	}

	return amount, nil
}
