package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError sends a structured error body with the given status code
func respondError(w http.ResponseWriter, status int, message string, details interface{}) {
	respondJSON(w, status, map[string]interface{}{
		"error":   message,
		"details": details,
	})
}

// respondServiceError maps service-layer errors onto HTTP status codes.
// Sentinel not-found errors become 404, business rule violations 400 or
// 409, everything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": vErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrClientNotFound),
		errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrPaymentNotFound),
		errors.Is(err, apperrors.ErrAlertNotFound),
		errors.Is(err, apperrors.ErrRuleNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		respondError(w, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		respondError(w, http.StatusConflict, "invalid transition", err.Error())
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientQuantity),
		errors.Is(err, apperrors.ErrSymbolNotTradable),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		respondError(w, http.StatusBadRequest, "bad request", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// decodeJSON reads the request body into dst, rejecting malformed JSON.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
