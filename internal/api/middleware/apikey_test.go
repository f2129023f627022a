package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/api/middleware"
)

// callGuarded runs a request through APIKeyMiddleware and reports whether the
// inner handler ran, plus the recorded response.
func callGuarded(headers map[string]string) (bool, *httptest.ResponseRecorder) {
	handlerCalled := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/internal/refresh-prices", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	middleware.APIKeyMiddleware(inner).ServeHTTP(w, req)
	return handlerCalled, w
}

func decodeDetails(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return response["details"]
}

func TestAPIKeyMiddleware(t *testing.T) {
	const testAPIKey = "test-api-key-12345"
	os.Setenv("INTERNAL_API_KEY", testAPIKey)
	defer os.Unsetenv("INTERNAL_API_KEY")

	rejected := []struct {
		name    string
		headers map[string]string
		details string
	}{
		{"missing API key", nil, "Missing API key"},
		{"wrong API key", map[string]string{"X-API-Key": "invalid"}, "Invalid API key"},
		{"missing time token", map[string]string{"X-API-Key": testAPIKey}, "Missing Time token"},
		{"stale time token", map[string]string{
			"X-API-Key":    testAPIKey,
			"X-Time-Token": "invalid",
		}, "Time token is invalid or expired"},
	}

	for _, tc := range rejected {
		t.Run("rejects request with "+tc.name, func(t *testing.T) {
			called, w := callGuarded(tc.headers)

			if called {
				t.Error("Expected the inner handler not to run")
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
			if details := decodeDetails(t, w); details != tc.details {
				t.Errorf("Expected details %q, got %q", tc.details, details)
			}
		})
	}

	t.Run("allows request with valid key and fresh token", func(t *testing.T) {
		called, w := callGuarded(map[string]string{
			"X-API-Key":    testAPIKey,
			"X-Time-Token": middleware.GenerateTimeToken(testAPIKey),
		})

		if !called {
			t.Error("Expected the inner handler to run")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("fails closed when no key is configured", func(t *testing.T) {
		os.Unsetenv("INTERNAL_API_KEY")
		defer os.Setenv("INTERNAL_API_KEY", testAPIKey)

		called, w := callGuarded(nil)

		if called {
			t.Error("Expected the inner handler not to run")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Authentication not loaded" {
			t.Errorf("Expected 'Authentication not loaded', got %q", details)
		}
	})
}
