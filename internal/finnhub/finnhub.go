// Package finnhub provides a client for the Finnhub-compatible market-data
// endpoint: live quotes per symbol and historical candles per symbol and
// period. Errors are returned to the caller, which applies the price
// fallback policy; this package never substitutes prices itself.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
)

// Period is a supported history window.
type Period string

const (
	Period1W Period = "1W"
	Period1M Period = "1M"
	Period1Y Period = "1Y"
)

// ParsePeriod validates a period string from a request.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1W, Period1M, Period1Y:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidPeriod, s)
}

// Start returns the beginning of the window ending at now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Period1W:
		return now.AddDate(0, 0, -7)
	case Period1M:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// Client fetches market data over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a market-data client for the given base URL. The API key
// may be empty when the endpoint does not require one.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Quote fetches the live quote for a symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (QuoteResponse, error) {
	params := url.Values{"symbol": {symbol}}

	var quote QuoteResponse
	if err := c.get(ctx, "/quote", params, &quote); err != nil {
		return QuoteResponse{}, err
	}

	if quote.CurrentPrice <= 0 {
		return QuoteResponse{}, fmt.Errorf("no price returned for symbol %s", symbol)
	}

	return quote, nil
}

// History fetches daily candles for a symbol over the given period and
// parses them into a structured series.
func (c *Client) History(ctx context.Context, symbol string, period Period) (PriceSeries, error) {
	now := time.Now().UTC()
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", period.Start(now).Unix())},
		"to":         {fmt.Sprintf("%d", now.Unix())},
	}

	var candles CandleResponse
	if err := c.get(ctx, "/candle", params, &candles); err != nil {
		return PriceSeries{}, err
	}

	return ParseSeries(symbol, period, candles)
}

// ParseSeries converts a raw candle response into a PriceSeries, validating
// that the data arrays are present and of matching lengths.
func ParseSeries(symbol string, period Period, candles CandleResponse) (PriceSeries, error) {
	if candles.Status == "no_data" || len(candles.Timestamp) == 0 {
		return PriceSeries{}, fmt.Errorf("no price data returned for symbol %s", symbol)
	}
	if len(candles.Close) != len(candles.Timestamp) {
		return PriceSeries{}, fmt.Errorf("mismatched data lengths")
	}

	points := make([]PricePoint, len(candles.Timestamp))
	for i, ts := range candles.Timestamp {
		points[i].Date = time.Unix(ts, 0).UTC()
		points[i].PriceClose = candles.Close[i]
		if i < len(candles.Open) {
			points[i].PriceOpen = candles.Open[i]
		}
		if i < len(candles.High) {
			points[i].PriceHigh = candles.High[i]
		}
		if i < len(candles.Low) {
			points[i].PriceLow = candles.Low[i]
		}
		if i < len(candles.Volume) {
			points[i].Volume = candles.Volume[i]
		}
	}

	return PriceSeries{Symbol: symbol, Period: period, Points: points}, nil
}

// get executes a GET against the market-data endpoint and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey != "" {
		params.Set("token", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market data endpoint returned %d: %s", resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode market data response: %w", err)
	}

	return nil
}
