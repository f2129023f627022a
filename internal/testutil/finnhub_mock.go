package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/moneymap/moneymap-backend/internal/finnhub"
)

// MockQuoteFeed is an in-memory implementation of pricing.QuoteFeed for
// testing. It returns configured prices instead of making HTTP calls.
type MockQuoteFeed struct {
	mu sync.Mutex
	// Prices maps symbol to the price the feed reports.
	Prices map[string]float64
	// Err is returned from every lookup when set.
	Err error
	// QueryCount tracks how many lookups were made.
	QueryCount int
}

// NewMockQuoteFeed creates a mock feed with the given symbol prices.
// A feed with no prices fails every lookup, which exercises the stored-price
// fallback in callers.
func NewMockQuoteFeed(prices map[string]float64) *MockQuoteFeed {
	if prices == nil {
		prices = map[string]float64{}
	}
	return &MockQuoteFeed{Prices: prices}
}

// Quote returns the configured price for the symbol, or an error when the
// symbol is unknown or Err is set.
func (m *MockQuoteFeed) Quote(_ context.Context, symbol string) (finnhub.QuoteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++
	if m.Err != nil {
		return finnhub.QuoteResponse{}, m.Err
	}
	price, ok := m.Prices[symbol]
	if !ok {
		return finnhub.QuoteResponse{}, errors.New("no price for symbol " + symbol)
	}
	return finnhub.QuoteResponse{
		CurrentPrice:  price,
		PreviousClose: price,
		Timestamp:     time.Now().Unix(),
	}, nil
}

// WithError configures the mock to fail every lookup.
func (m *MockQuoteFeed) WithError(err error) *MockQuoteFeed {
	m.Err = err
	return m
}

// Queries returns how many lookups were made.
func (m *MockQuoteFeed) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// NewFinnhubTestServer starts an httptest server that speaks the market-data
// wire format: /quote answers with the configured price per symbol and
// /candle answers with `days` daily closes ending yesterday at that price.
// Unknown symbols get a zero quote and a no_data candle status, mirroring
// the real endpoint. The server is shut down when the test completes.
func NewFinnhubTestServer(t *testing.T, prices map[string]float64, days int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		price := prices[r.URL.Query().Get("symbol")]
		writeJSON(t, w, finnhub.QuoteResponse{
			CurrentPrice:  price,
			PreviousClose: price,
			Timestamp:     time.Now().Unix(),
		})
	})
	mux.HandleFunc("/candle", func(w http.ResponseWriter, r *http.Request) {
		price, ok := prices[r.URL.Query().Get("symbol")]
		if !ok {
			writeJSON(t, w, finnhub.CandleResponse{Status: "no_data"})
			return
		}
		resp := finnhub.CandleResponse{Status: "ok"}
		for i := days; i >= 1; i-- {
			day := time.Now().UTC().AddDate(0, 0, -i)
			resp.Timestamp = append(resp.Timestamp, day.Unix())
			resp.Open = append(resp.Open, price)
			resp.High = append(resp.High, price)
			resp.Low = append(resp.Low, price)
			resp.Close = append(resp.Close, price)
			resp.Volume = append(resp.Volume, int64(1000+i))
		}
		writeJSON(t, w, resp)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("Failed to encode mock response: %v", err)
	}
}
