package model

import (
	"time"

	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// Portfolio represents a named collection of assets owned by one client.
type Portfolio struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AssetValuation is one asset's valuation inside a portfolio summary.
type AssetValuation struct {
	AssetID           string                `json:"assetId"`
	Symbol            string                `json:"symbol"`
	Name              string                `json:"name"`
	Type              AssetType             `json:"type"`
	Quantity          float64               `json:"quantity"`
	PurchasePrice     float64               `json:"purchasePrice"`
	CurrentPrice      float64               `json:"currentPrice"`
	CurrentValue      float64               `json:"currentValue"`
	ProfitLoss        float64               `json:"profitLoss"`
	ProfitLossPercent float64               `json:"profitLossPercent"`
	PriceSource       valuation.QuoteSource `json:"priceSource"`
}

// PortfolioSummary is the current state of one portfolio: per-asset
// valuations plus totals derived from them.
type PortfolioSummary struct {
	ID                string                 `json:"id"`
	ClientID          string                 `json:"clientId"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	Assets            []AssetValuation       `json:"assets"`
	TotalValue        float64                `json:"totalValue"`
	TotalCost         float64                `json:"totalCost"`
	TotalProfitLoss   float64                `json:"totalProfitLoss"`
	ProfitLossPercent float64                `json:"profitLossPercent"`
	Distribution      []valuation.TypeBucket `json:"distribution"`
}
