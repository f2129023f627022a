// Package valuation derives portfolio and asset valuation metrics from raw
// position and price data. All functions are pure: they never mutate their
// inputs, never touch storage, and never issue network calls. Price
// resolution (live feed, stored snapshot, fallback) is the caller's job.
package valuation

// QuoteSource identifies where a quote's price came from. A degraded source
// lets callers distinguish "worth $0" from "price unavailable".
type QuoteSource string

const (
	// SourceLive means the price came from the market-data feed.
	SourceLive QuoteSource = "live"

	// SourceStored means the live feed was unavailable and the price is the
	// last stored snapshot.
	SourceStored QuoteSource = "stored"

	// SourceNone means no price could be resolved at all; the price is zero
	// and the valuation must be presented as stale/unknown, not as $0.
	SourceNone QuoteSource = "none"
)

// Position is a read-only view of an ownership record: some quantity of a
// symbol acquired at a purchase price. Inputs are assumed validated
// non-negative at the storage boundary.
type Position struct {
	Symbol        string
	Type          string // asset type discriminator, used for bucketing
	Quantity      float64
	PurchasePrice float64
}

// Quote is a current per-unit price for a symbol together with its source.
type Quote struct {
	Price  float64
	Source QuoteSource
}

// Result holds the three valuation numbers for a single position.
type Result struct {
	CurrentValue      float64
	ProfitLoss        float64
	ProfitLossPercent float64
	Source            QuoteSource
}

// ValuePosition combines a position with a current price quote.
//
// CurrentValue is quantity times price. ProfitLoss is current value minus
// cost basis (quantity times purchase price), sign preserved. The percentage
// form is defined as 0 when the cost basis is 0 so downstream aggregation and
// display never see NaN or Inf.
func ValuePosition(pos Position, q Quote) Result {
	costBasis := pos.Quantity * pos.PurchasePrice
	currentValue := pos.Quantity * q.Price
	profitLoss := currentValue - costBasis

	profitLossPercent := 0.0
	if costBasis != 0 {
		profitLossPercent = profitLoss / costBasis * 100
	}

	return Result{
		CurrentValue:      currentValue,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: profitLossPercent,
		Source:            q.Source,
	}
}
