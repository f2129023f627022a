package service

import (
	"context"
	"fmt"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/finnhub"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// MarketService exposes the trading catalog and market data lookups.
type MarketService struct {
	feed     *finnhub.Client
	resolver *pricing.Resolver
}

// NewMarketService creates a new MarketService with the provided dependencies.
func NewMarketService(feed *finnhub.Client, resolver *pricing.Resolver) *MarketService {
	return &MarketService{feed: feed, resolver: resolver}
}

func errSymbolNotTradable(symbol string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrSymbolNotTradable, symbol)
}

// Catalog returns the tradable instruments, optionally filtered by type.
func (s *MarketService) Catalog(assetType string) []model.CatalogEntry {
	if assetType == "" {
		return model.Catalog
	}
	filtered := []model.CatalogEntry{}
	for _, e := range model.Catalog {
		if string(e.Type) == assetType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Quote resolves the freshest price for a catalog symbol, degrading to the
// catalog reference price when the feed is down.
func (s *MarketService) Quote(ctx context.Context, symbol string) (model.CatalogEntry, valuation.Quote, error) {
	entry, ok := model.FindCatalogEntry(symbol)
	if !ok {
		return model.CatalogEntry{}, valuation.Quote{}, errSymbolNotTradable(symbol)
	}
	q := s.resolver.ResolveOne(ctx, symbol, entry.ReferencePrice)
	return entry, q, nil
}

// History fetches a daily candle series for a catalog symbol over the period.
func (s *MarketService) History(ctx context.Context, symbol, period string) (finnhub.PriceSeries, error) {
	p, err := finnhub.ParsePeriod(period)
	if err != nil {
		return finnhub.PriceSeries{}, err
	}
	if _, ok := model.FindCatalogEntry(symbol); !ok {
		return finnhub.PriceSeries{}, errSymbolNotTradable(symbol)
	}
	return s.feed.History(ctx, symbol, p)
}
