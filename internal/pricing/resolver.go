// Package pricing resolves current prices for a batch of assets, applying
// one uniform fallback policy: live feed, then the stored snapshot price,
// then zero flagged as unresolved. The valuation engine consumes the result
// and never talks to the feed itself.
package pricing

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/moneymap/moneymap-backend/internal/finnhub"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// QuoteFeed is the live market-data dependency. *finnhub.Client satisfies it.
type QuoteFeed interface {
	Quote(ctx context.Context, symbol string) (finnhub.QuoteResponse, error)
}

// Resolver fetches live quotes concurrently per symbol and falls back to
// stored snapshots when the feed fails.
type Resolver struct {
	feed        QuoteFeed
	maxInFlight int
}

// NewResolver creates a Resolver over the given feed. maxInFlight bounds the
// number of concurrent symbol lookups; values below one fall back to a
// sensible default.
func NewResolver(feed QuoteFeed, maxInFlight int) *Resolver {
	if maxInFlight < 1 {
		maxInFlight = 8
	}
	return &Resolver{feed: feed, maxInFlight: maxInFlight}
}

// Resolve returns a quote per distinct symbol appearing in assets. Each
// symbol gets its own map slot, so concurrent fetches never contend on the
// same entry. A failed lookup degrades to the stored snapshot carried by the
// first asset seen for that symbol, then to a zero quote flagged SourceNone;
// one bad symbol never fails the batch.
func (r *Resolver) Resolve(ctx context.Context, assets []model.Asset) map[string]valuation.Quote {
	stored := make(map[string]float64)
	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		if _, seen := stored[a.Symbol]; seen {
			continue
		}
		stored[a.Symbol] = a.CurrentPrice
		symbols = append(symbols, a.Symbol)
	}

	quotes := make(map[string]valuation.Quote, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxInFlight)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			q := r.resolveOne(ctx, symbol, stored[symbol])
			mu.Lock()
			quotes[symbol] = q
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; degraded quotes are the failure mode.
	_ = g.Wait()

	return quotes
}

// ResolveOne resolves a single symbol with the same fallback chain.
func (r *Resolver) ResolveOne(ctx context.Context, symbol string, storedPrice float64) valuation.Quote {
	return r.resolveOne(ctx, symbol, storedPrice)
}

func (r *Resolver) resolveOne(ctx context.Context, symbol string, storedPrice float64) valuation.Quote {
	live, err := r.feed.Quote(ctx, symbol)
	if err == nil {
		return valuation.Quote{Price: live.CurrentPrice, Source: valuation.SourceLive}
	}

	log.Printf("live quote for %s unavailable, falling back: %v", symbol, err)

	if storedPrice > 0 {
		return valuation.Quote{Price: storedPrice, Source: valuation.SourceStored}
	}
	return valuation.Quote{Price: 0, Source: valuation.SourceNone}
}

// Lookup adapts a resolved quote map into the valuation engine's lookup
// contract. Symbols missing from the map report as unresolvable.
func Lookup(quotes map[string]valuation.Quote) valuation.QuoteLookup {
	return func(symbol string) (valuation.Quote, bool) {
		q, ok := quotes[symbol]
		if !ok || q.Source == valuation.SourceNone {
			return q, false
		}
		return q, true
	}
}
