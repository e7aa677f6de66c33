package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/adapter/http/dto"
	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBookingConflict),
		errors.Is(err, domain.ErrSettlementConflict),
		errors.Is(err, domain.ErrInvoiceSettled),
		errors.Is(err, domain.ErrDuplicateAccountCode):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingContact),
		errors.Is(err, domain.ErrMissingAccount),
		errors.Is(err, domain.ErrSplitSettlementUnsupported),
		errors.Is(err, domain.ErrEmptyKeyword),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInvalidAccountCode),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidContactName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSystemAccountProtected):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEnrichmentUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
