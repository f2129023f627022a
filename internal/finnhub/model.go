package finnhub

import "time"

// QuoteResponse is the raw quote payload from the market-data endpoint.
// Field tags follow Finnhub's single-letter convention.
type QuoteResponse struct {
	CurrentPrice  float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// CandleResponse is the raw historical-series payload. The Status field is
// "ok" when data is present and "no_data" otherwise.
type CandleResponse struct {
	Open      []float64 `json:"o"`
	High      []float64 `json:"h"`
	Low       []float64 `json:"l"`
	Close     []float64 `json:"c"`
	Volume    []int64   `json:"v"`
	Timestamp []int64   `json:"t"`
	Status    string    `json:"s"`
}

// PricePoint is one parsed point of a historical series.
type PricePoint struct {
	Date       time.Time `json:"date"`
	PriceOpen  float64   `json:"priceOpen"`
	PriceClose float64   `json:"priceClose"`
	PriceHigh  float64   `json:"priceHigh"`
	PriceLow   float64   `json:"priceLow"`
	Volume     int64     `json:"volume"`
}

// PriceSeries is the application's structured view of a symbol's history
// over one requested period.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Period Period       `json:"period"`
	Points []PricePoint `json:"points"`
}
