package request

// CreateAssetRequest represents the request body for registering an existing
// holding. Details carries the fields of the declared type; fields belonging
// to other types are rejected.
type CreateAssetRequest struct {
	PortfolioID   string       `json:"portfolioId"`
	Type          string       `json:"type"`
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Quantity      float64      `json:"quantity"`
	PurchasePrice float64      `json:"purchasePrice"`
	PurchaseDate  string       `json:"purchaseDate"` // YYYY-MM-DD
	Notes         string       `json:"notes"`
	Details       AssetDetails `json:"details"`
}

// AssetDetails is the union of all per-type fields. Validation enforces that
// only the declared type's fields are set.
type AssetDetails struct {
	// STOCK
	Exchange          string  `json:"exchange,omitempty"`
	Sector            string  `json:"sector,omitempty"`
	DividendYield     float64 `json:"dividendYield,omitempty"`
	FractionalAllowed bool    `json:"fractionalAllowed,omitempty"`
	// CRYPTO
	Blockchain    string  `json:"blockchain,omitempty"`
	WalletAddress string  `json:"walletAddress,omitempty"`
	StakingApy    float64 `json:"stakingApy,omitempty"`
	// GOLD
	Purity        string  `json:"purity,omitempty"`
	WeightInGrams float64 `json:"weightInGrams,omitempty"`
	StorageType   string  `json:"storageType,omitempty"`
	// MUTUAL_FUND
	FundHouse    string  `json:"fundHouse,omitempty"`
	FundCode     string  `json:"fundCode,omitempty"`
	ExpenseRatio float64 `json:"expenseRatio,omitempty"`
}

type UpdateAssetRequest struct {
	Name          *string       `json:"name,omitempty"`
	Quantity      *float64      `json:"quantity,omitempty"`
	PurchasePrice *float64      `json:"purchasePrice,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	Details       *AssetDetails `json:"details,omitempty"`
}
