package model

import "time"

// Client represents a wealth-management client and their cash wallet.
// The wallet is the funding source for buy orders and the sink for sale
// proceeds; it never goes negative.
type Client struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	CountryCode       string    `json:"countryCode"`       // ISO 3166-1 alpha-2
	PreferredCurrency string    `json:"preferredCurrency"` // ISO 4217
	WalletBalance     float64   `json:"walletBalance"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// HasSufficientFunds reports whether the wallet covers the given amount.
func (c Client) HasSufficientFunds(amount float64) bool {
	return c.WalletBalance >= amount
}

// ClientFilter for querying clients.
type ClientFilter struct {
	IncludeInactive bool
}

// ClientSummary is a client's aggregate position across all portfolios,
// used for top-N rankings.
type ClientSummary struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	TotalValue float64 `json:"totalValue"`
	AssetCount int     `json:"assetCount"`
}
