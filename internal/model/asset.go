package model

import (
	"time"

	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// AssetType discriminates the asset variants supported by the platform.
type AssetType string

const (
	AssetTypeStock      AssetType = "STOCK"
	AssetTypeCrypto     AssetType = "CRYPTO"
	AssetTypeGold       AssetType = "GOLD"
	AssetTypeMutualFund AssetType = "MUTUAL_FUND"
)

// AssetTypes lists every valid asset type, in display order.
var AssetTypes = []AssetType{AssetTypeStock, AssetTypeCrypto, AssetTypeGold, AssetTypeMutualFund}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeGold, AssetTypeMutualFund:
		return true
	}
	return false
}

// AssetDetails is the per-type payload of an asset. Exactly one concrete
// payload applies per asset, keyed by its type; unrelated type-specific
// fields cannot coexist. Payloads have no bearing on valuation arithmetic.
type AssetDetails interface {
	AssetType() AssetType
}

// StockDetails holds stock-specific attributes.
type StockDetails struct {
	Exchange          string  `json:"exchange"`
	Sector            string  `json:"sector"`
	DividendYield     float64 `json:"dividendYield"`
	FractionalAllowed bool    `json:"fractionalAllowed"`
}

func (StockDetails) AssetType() AssetType { return AssetTypeStock }

// CryptoDetails holds cryptocurrency-specific attributes.
type CryptoDetails struct {
	Blockchain    string  `json:"blockchain"`
	WalletAddress string  `json:"walletAddress"`
	StakingApy    float64 `json:"stakingApy"`
}

func (CryptoDetails) AssetType() AssetType { return AssetTypeCrypto }

// GoldDetails holds physical-gold attributes.
type GoldDetails struct {
	Purity        string  `json:"purity"` // e.g. 24K, 22K
	WeightInGrams float64 `json:"weightInGrams"`
	StorageType   string  `json:"storageType"`
}

func (GoldDetails) AssetType() AssetType { return AssetTypeGold }

// MutualFundDetails holds mutual-fund attributes.
type MutualFundDetails struct {
	FundHouse    string  `json:"fundHouse"`
	FundCode     string  `json:"fundCode"`
	ExpenseRatio float64 `json:"expenseRatio"`
}

func (MutualFundDetails) AssetType() AssetType { return AssetTypeMutualFund }

// Asset represents a holding: some quantity of a symbol acquired at a
// purchase price. Quantity and prices are validated non-negative at the
// API boundary; purchase date never lies in the future.
type Asset struct {
	ID            string
	PortfolioID   string
	Symbol        string
	Name          string
	Quantity      float64
	PurchasePrice float64
	PurchaseDate  time.Time
	CurrentPrice  float64 // last stored snapshot, refreshed by the price job
	Notes         string
	Details       AssetDetails
	LastAlertAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Type returns the asset's discriminator, derived from its payload.
func (a Asset) Type() AssetType {
	if a.Details == nil {
		return ""
	}
	return a.Details.AssetType()
}

// Position converts the asset into the valuation engine's read-only view.
func (a Asset) Position() valuation.Position {
	return valuation.Position{
		Symbol:        a.Symbol,
		Type:          string(a.Type()),
		Quantity:      a.Quantity,
		PurchasePrice: a.PurchasePrice,
	}
}

// CanAlert reports whether enough time has passed since the last price-drop
// alert for this asset, given the configured cooldown.
func (a Asset) CanAlert(cooldown time.Duration, now time.Time) bool {
	if a.LastAlertAt == nil {
		return true
	}
	return now.Sub(*a.LastAlertAt) >= cooldown
}

// AssetPrice is one historical price point for an asset.
type AssetPrice struct {
	ID      string
	AssetID string
	Date    time.Time
	Price   float64
}
