package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/accountledger/internal/adapter/http/dto"
	"github.com/iho/accountledger/internal/domain"
)

// Error codes carried in ErrorResponse.Error.
const (
	codeInvalidBody       = "invalid_body"
	codeValidationFailed  = "validation_failed"
	codeAccountNotFound   = "account_not_found"
	codeInsufficientLimit = "insufficient_limit"
	codeAmountOverflow    = "amount_overflow"
	codeUnavailable       = "service_unavailable"
	codeInternal          = "internal_error"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// writeDomainError maps err to a status and body. Store and internal faults
// get a generic message so no driver detail reaches the caller.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := mapDomainError(err)

	resp := dto.ErrorResponse{Error: code}
	switch code {
	case codeUnavailable:
		resp.Message = "temporarily unavailable, retry later"
	case codeInternal:
		resp.Message = "internal error"
	default:
		resp.Message = err.Error()
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		resp.Field = validationErr.Field
	}

	writeJSON(w, status, resp)
}

// mapDomainError maps domain errors to HTTP status codes and error codes.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTransaction):
		return http.StatusUnprocessableEntity, codeValidationFailed
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, codeAccountNotFound
	case errors.Is(err, domain.ErrInsufficientLimit):
		return http.StatusUnprocessableEntity, codeInsufficientLimit
	case errors.Is(err, domain.ErrAmountOverflow):
		return http.StatusUnprocessableEntity, codeAmountOverflow
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
