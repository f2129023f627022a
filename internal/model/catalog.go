package model

// CatalogEntry is one tradable instrument in the market catalog, with a
// reference price used when no fresher quote is available.
type CatalogEntry struct {
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	Type           AssetType `json:"type"`
	ReferencePrice float64   `json:"referencePrice"`
	Venue          string    `json:"venue"` // exchange, blockchain, purity or fund house
}

// Catalog is the fixed list of instruments available for trading.
var Catalog = []CatalogEntry{
	// Stocks
	{Symbol: "AAPL", Name: "Apple Inc.", Type: AssetTypeStock, ReferencePrice: 175.50, Venue: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: AssetTypeStock, ReferencePrice: 140.25, Venue: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: AssetTypeStock, ReferencePrice: 380.75, Venue: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Type: AssetTypeStock, ReferencePrice: 245.80, Venue: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Type: AssetTypeStock, ReferencePrice: 155.30, Venue: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Type: AssetTypeStock, ReferencePrice: 485.20, Venue: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Type: AssetTypeStock, ReferencePrice: 875.40, Venue: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Type: AssetTypeStock, ReferencePrice: 195.60, Venue: "NYSE"},
	{Symbol: "V", Name: "Visa Inc.", Type: AssetTypeStock, ReferencePrice: 275.80, Venue: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Type: AssetTypeStock, ReferencePrice: 165.40, Venue: "NYSE"},

	// Cryptocurrencies
	{Symbol: "BTC", Name: "Bitcoin", Type: AssetTypeCrypto, ReferencePrice: 43250.00, Venue: "Bitcoin"},
	{Symbol: "ETH", Name: "Ethereum", Type: AssetTypeCrypto, ReferencePrice: 2280.50, Venue: "Ethereum"},
	{Symbol: "ADA", Name: "Cardano", Type: AssetTypeCrypto, ReferencePrice: 0.58, Venue: "Cardano"},
	{Symbol: "SOL", Name: "Solana", Type: AssetTypeCrypto, ReferencePrice: 98.75, Venue: "Solana"},
	{Symbol: "DOT", Name: "Polkadot", Type: AssetTypeCrypto, ReferencePrice: 7.85, Venue: "Polkadot"},
	{Symbol: "MATIC", Name: "Polygon", Type: AssetTypeCrypto, ReferencePrice: 0.92, Venue: "Polygon"},
	{Symbol: "LINK", Name: "Chainlink", Type: AssetTypeCrypto, ReferencePrice: 14.65, Venue: "Ethereum"},
	{Symbol: "AVAX", Name: "Avalanche", Type: AssetTypeCrypto, ReferencePrice: 38.90, Venue: "Avalanche"},

	// Gold
	{Symbol: "GOLD24K", Name: "24 Karat Gold", Type: AssetTypeGold, ReferencePrice: 68.50, Venue: "24K"},
	{Symbol: "GOLD22K", Name: "22 Karat Gold", Type: AssetTypeGold, ReferencePrice: 62.75, Venue: "22K"},
	{Symbol: "GOLD18K", Name: "18 Karat Gold", Type: AssetTypeGold, ReferencePrice: 51.25, Venue: "18K"},
	{Symbol: "SILVER", Name: "Silver", Type: AssetTypeGold, ReferencePrice: 0.95, Venue: "Silver"},

	// Mutual funds
	{Symbol: "VFIAX", Name: "Vanguard 500 Index Admiral", Type: AssetTypeMutualFund, ReferencePrice: 425.30, Venue: "Vanguard"},
	{Symbol: "FXAIX", Name: "Fidelity 500 Index", Type: AssetTypeMutualFund, ReferencePrice: 118.75, Venue: "Fidelity"},
	{Symbol: "SWPPX", Name: "Schwab S&P 500 Index", Type: AssetTypeMutualFund, ReferencePrice: 95.40, Venue: "Charles Schwab"},
	{Symbol: "VTSAX", Name: "Vanguard Total Stock Market Admiral", Type: AssetTypeMutualFund, ReferencePrice: 245.80, Venue: "Vanguard"},
	{Symbol: "FSKAX", Name: "Fidelity Total Market Index", Type: AssetTypeMutualFund, ReferencePrice: 135.60, Venue: "Fidelity"},
}

// FindCatalogEntry looks up a tradable instrument by symbol.
func FindCatalogEntry(symbol string) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// DefaultDetails returns a fresh per-type payload for an instrument created
// from the catalog.
func (e CatalogEntry) DefaultDetails() AssetDetails {
	switch e.Type {
	case AssetTypeStock:
		return StockDetails{Exchange: e.Venue, FractionalAllowed: true}
	case AssetTypeCrypto:
		return CryptoDetails{Blockchain: e.Venue}
	case AssetTypeGold:
		return GoldDetails{Purity: e.Venue}
	case AssetTypeMutualFund:
		return MutualFundDetails{FundHouse: e.Venue}
	default:
		return nil
	}
}
