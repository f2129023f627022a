package model

import (
	"time"

	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// QuarterlyReport is the client-facing quarterly statement: who the client
// is, what they hold across all portfolios, and how the quarter went.
type QuarterlyReport struct {
	Client              ReportClientInfo       `json:"client"`
	Period              string                 `json:"period"` // e.g. "Q3 2026"
	Metrics             ReportMetrics          `json:"metrics"`
	Holdings            []ReportHolding        `json:"holdings"`
	Allocation          []valuation.TypeBucket `json:"allocation"`
	TopTransactions     []Transaction          `json:"topTransactions"`
	QuarterTransactions []Transaction          `json:"quarterTransactions"`
	GeneratedAt         time.Time              `json:"generatedAt"`
}

// ReportClientInfo is the client header of a report.
type ReportClientInfo struct {
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Address           string    `json:"address,omitempty"`
	PreferredCurrency string    `json:"preferredCurrency"`
	ClientSince       time.Time `json:"clientSince"`
}

// ReportMetrics are the aggregate numbers for the reporting quarter.
// QuarterReturn is portfolio value minus what was invested this quarter plus
// what was withdrawn; ReturnPercent is 0 when nothing was invested.
type ReportMetrics struct {
	PortfolioValue   float64 `json:"portfolioValue"`
	WalletBalance    float64 `json:"walletBalance"`
	NetWorth         float64 `json:"netWorth"`
	Invested         float64 `json:"invested"`
	Withdrawn        float64 `json:"withdrawn"`
	QuarterReturn    float64 `json:"quarterReturn"`
	ReturnPercent    float64 `json:"returnPercent"`
	TransactionCount int     `json:"transactionCount"`
}

// ReportHolding is one asset line in the report, largest holdings first.
type ReportHolding struct {
	Symbol           string                `json:"symbol"`
	Name             string                `json:"name"`
	Type             AssetType             `json:"type"`
	Quantity         float64               `json:"quantity"`
	CurrentPrice     float64               `json:"currentPrice"`
	Value            float64               `json:"value"`
	PortfolioPercent float64               `json:"portfolioPercent"`
	PriceSource      valuation.QuoteSource `json:"priceSource"`
}
