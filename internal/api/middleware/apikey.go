package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moneymap/moneymap-backend/internal/api/response"
)

// timeTokenTTL bounds how long a generated time token stays valid.
const timeTokenTTL = 5 * time.Minute

// GenerateTimeToken produces a short-lived token binding the current time to
// the API key. Format: unix-timestamp:hmac-sha256(timestamp, key).
func GenerateTimeToken(apiKey string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return ts + ":" + signTimestamp(ts, apiKey)
}

func signTimestamp(ts, apiKey string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(ts))
	return hex.EncodeToString(mac.Sum(nil))
}

func validateTimeToken(token, apiKey string) error {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed time token")
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed time token timestamp")
	}
	age := time.Since(time.Unix(ts, 0))
	if age < 0 || age > timeTokenTTL {
		return fmt.Errorf("time token outside validity window")
	}
	expected := signTimestamp(parts[0], apiKey)
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return fmt.Errorf("time token signature mismatch")
	}
	return nil
}

// APIKeyMiddleware guards internal endpoints. Callers must present the
// shared key in X-API-Key plus a fresh X-Time-Token so captured headers
// cannot be replayed later.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internalKey := os.Getenv("INTERNAL_API_KEY")
		if internalKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(internalKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if err := validateTimeToken(timeToken, internalKey); err != nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
