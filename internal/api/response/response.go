// Package response provides shared helpers for writing JSON responses from
// middleware, which cannot reach the handler package's unexported helpers.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope every endpoint returns.
// Details is optional and carries machine-readable context, such as the
// per-field messages from a validation failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status code. A nil data
// writes only the status, which is what 204 No Content wants.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes a structured error response.
//
// Example:
//
//	response.RespondError(w, http.StatusUnauthorized, "invalid API key", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
