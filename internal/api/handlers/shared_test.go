package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/validation"
)

// Internal test (package handlers, not handlers_test) because the response
// helpers are unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusOK, map[string]string{"message": "success"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("nil data writes only the status", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("un-encodable data does not panic", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		respondJSON(w, http.StatusOK, map[string]interface{}{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"client not found", apperrors.ErrClientNotFound, http.StatusNotFound},
		{"payment not found", apperrors.ErrPaymentNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrAssetNotFound), http.StatusNotFound},
		{"duplicate entry", apperrors.ErrDuplicateEntry, http.StatusConflict},
		{"illegal transition", apperrors.ErrInvalidStatusTransition, http.StatusConflict},
		{"insufficient funds", apperrors.ErrInsufficientFunds, http.StatusBadRequest},
		{"symbol not tradable", apperrors.ErrSymbolNotTradable, http.StatusBadRequest},
		{"unclassified error", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondServiceError(w, tc.err)

			if w.Code != tc.want {
				t.Errorf("Expected status %d, got %d", tc.want, w.Code)
			}
		})
	}

	t.Run("validation error returns 400 with field details", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := &validation.Error{Fields: map[string]string{"email": "email is required"}}

		respondServiceError(w, err)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		if body := w.Body.String(); body == "" {
			t.Error("Expected field details in the body")
		}
	})
}
