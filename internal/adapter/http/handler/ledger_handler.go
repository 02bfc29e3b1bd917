package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/accountledger/internal/adapter/http/dto"
	"github.com/iho/accountledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) ([]usecase.ReconciliationResult, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	drift, err := h.ledgerUC.CheckConsistency(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
			Status:     "consistent",
			Consistent: true,
		})
	case errors.Is(err, usecase.ErrInconsistentLedger):
		writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
			Status: "inconsistent",
			Drift:  dto.ReconciliationsFromUseCase(drift),
		})
	case errors.Is(err, usecase.ErrConsistencyUnsupported):
		writeError(w, http.StatusNotImplemented, "not_supported", err.Error())
	default:
		writeDomainError(w, err)
	}
}
