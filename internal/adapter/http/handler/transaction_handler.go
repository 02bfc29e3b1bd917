package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/accountledger/internal/adapter/http/dto"
	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/usecase"
)

// maxBodyBytes bounds a transaction request body.
const maxBodyBytes = 4 << 10

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (domain.Balance, error)
	GetStatement(ctx context.Context, accountID string) (*domain.Statement, error)
}

// TransactionHandler serves the per-account transaction and statement routes.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create applies a credit or debit to the account in the path.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody, err.Error())
		return
	}

	input, err := req.ToUseCaseInput(accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	balance, err := h.transactionUC.CreateTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}

// Statement returns the balance and most recent transactions.
func (h *TransactionHandler) Statement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.transactionUC.GetStatement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}
