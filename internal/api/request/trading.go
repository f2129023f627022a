package request

// TradeRequest represents a buy or sell order against a portfolio
type TradeRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
}

// RecordTransactionRequest represents a ledger entry that does not move
// wallet funds: dividends, interest and transfers
type RecordTransactionRequest struct {
	AssetID      string  `json:"assetId"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalAmount  float64 `json:"totalAmount"`
	Date         string  `json:"date"` // YYYY-MM-DD, defaults to today
	Notes        string  `json:"notes"`
}
