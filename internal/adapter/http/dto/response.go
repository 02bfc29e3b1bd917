package dto

import (
	"time"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/usecase"
)

// BalanceResponse is returned by a successful transaction.
type BalanceResponse struct {
	Limit   int64 `json:"limite"`
	Balance int64 `json:"saldo"`
}

// BalanceFromDomain converts a domain balance to response.
func BalanceFromDomain(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		Limit:   int64(b.Limit),
		Balance: int64(b.Balance),
	}
}

// StatementResponse is returned by GET /clientes/{id}/extrato.
type StatementResponse struct {
	Balance      StatementBalance      `json:"saldo"`
	Transactions []TransactionResponse `json:"ultimas_transacoes"`
}

// StatementBalance is the balance block of a statement.
type StatementBalance struct {
	Total       int64     `json:"total"`
	GeneratedAt time.Time `json:"data_extrato"`
	Limit       int64     `json:"limite"`
}

// TransactionResponse represents one transaction in a statement.
type TransactionResponse struct {
	Amount      int64     `json:"valor"`
	Kind        string    `json:"tipo"`
	Description string    `json:"descricao"`
	OccurredAt  time.Time `json:"realizada_em"`
}

// StatementFromDomain converts a domain statement to response, newest first.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	transactions := make([]TransactionResponse, len(s.Transactions))
	for i, tx := range s.Transactions {
		transactions[i] = TransactionResponse{
			Amount:      int64(tx.Amount),
			Kind:        string(tx.Kind),
			Description: tx.Description,
			OccurredAt:  tx.OccurredAt,
		}
	}

	return &StatementResponse{
		Balance: StatementBalance{
			Total:       int64(s.Balance),
			GeneratedAt: s.GeneratedAt,
			Limit:       int64(s.Limit),
		},
		Transactions: transactions,
	}
}

// ConsistencyResponse reports the outcome of a consistency check.
type ConsistencyResponse struct {
	Status     string                   `json:"status"`
	Consistent bool                     `json:"consistent"`
	Drift      []ReconciliationResponse `json:"drift,omitempty"`
}

// ReconciliationResponse is one account whose balance disagrees with its
// transactions.
type ReconciliationResponse struct {
	AccountID         string    `json:"account_id"`
	RecordedBalance   int64     `json:"recorded_balance"`
	CalculatedBalance int64     `json:"calculated_balance"`
	LastChecked       time.Time `json:"last_checked"`
}

// ReconciliationsFromUseCase converts reconciliation results to response.
func ReconciliationsFromUseCase(results []usecase.ReconciliationResult) []ReconciliationResponse {
	if len(results) == 0 {
		return nil
	}

	resp := make([]ReconciliationResponse, len(results))
	for i, r := range results {
		resp[i] = ReconciliationResponse{
			AccountID:         r.AccountID,
			RecordedBalance:   int64(r.RecordedBalance),
			CalculatedBalance: int64(r.CalculatedBalance),
			LastChecked:       r.LastChecked,
		}
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
