package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// PortfolioService handles portfolio business logic: CRUD plus the valuation
// views built from live quotes.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	clientRepo    *repository.ClientRepository
	assetRepo     *repository.AssetRepository
	resolver      *pricing.Resolver
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	clientRepo *repository.ClientRepository,
	assetRepo *repository.AssetRepository,
	resolver *pricing.Resolver,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		clientRepo:    clientRepo,
		assetRepo:     assetRepo,
		resolver:      resolver,
	}
}

// GetPortfolios retrieves all portfolios, or one client's portfolios when
// clientID is non-empty.
func (s *PortfolioService) GetPortfolios(clientID string) ([]model.Portfolio, error) {
	if clientID == "" {
		return s.portfolioRepo.GetPortfolios()
	}
	if _, err := s.clientRepo.GetClientOnID(clientID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.GetPortfoliosOnClientID(clientID)
}

// GetPortfolio retrieves a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}

// CreatePortfolio creates a portfolio for an existing client.
func (s *PortfolioService) CreatePortfolio(p model.Portfolio) (model.Portfolio, error) {
	if _, err := s.clientRepo.GetClientOnID(p.ClientID); err != nil {
		return model.Portfolio{}, err
	}
	p.ID = uuid.New().String()
	if err := s.portfolioRepo.CreatePortfolio(p); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return s.portfolioRepo.GetPortfolioOnID(p.ID)
}

// UpdatePortfolio updates a portfolio's name and description.
func (s *PortfolioService) UpdatePortfolio(p model.Portfolio) (model.Portfolio, error) {
	if err := s.portfolioRepo.UpdatePortfolio(p); err != nil {
		return model.Portfolio{}, err
	}
	return s.portfolioRepo.GetPortfolioOnID(p.ID)
}

// DeletePortfolio removes a portfolio and, via cascade, its assets.
func (s *PortfolioService) DeletePortfolio(portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(portfolioID)
}

// GetSummary values every asset in the portfolio against the freshest quote
// available and derives totals. Assets whose quotes cannot be resolved are
// carried at zero value and flagged by their price source, never dropped.
func (s *PortfolioService) GetSummary(ctx context.Context, portfolioID string) (model.PortfolioSummary, error) {
	p, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	assets, err := s.assetRepo.GetAssetsOnPortfolioID(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("failed to load portfolio assets: %w", err)
	}

	quotes := s.resolver.Resolve(ctx, assets)

	summary := model.PortfolioSummary{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Assets:      make([]model.AssetValuation, 0, len(assets)),
	}

	positions := make([]valuation.Position, 0, len(assets))
	for _, a := range assets {
		q := quotes[a.Symbol]
		r := valuation.ValuePosition(a.Position(), q)

		summary.Assets = append(summary.Assets, model.AssetValuation{
			AssetID:           a.ID,
			Symbol:            a.Symbol,
			Name:              a.Name,
			Type:              a.Type(),
			Quantity:          a.Quantity,
			PurchasePrice:     a.PurchasePrice,
			CurrentPrice:      q.Price,
			CurrentValue:      r.CurrentValue,
			ProfitLoss:        r.ProfitLoss,
			ProfitLossPercent: r.ProfitLossPercent,
			PriceSource:       r.Source,
		})

		summary.TotalValue += r.CurrentValue
		summary.TotalCost += a.Quantity * a.PurchasePrice
		summary.TotalProfitLoss += r.ProfitLoss
		positions = append(positions, a.Position())
	}

	if summary.TotalCost != 0 {
		summary.ProfitLossPercent = summary.TotalProfitLoss / summary.TotalCost * 100
	}
	summary.Distribution = valuation.AggregateByType(positions, pricing.Lookup(quotes))

	return summary, nil
}

// GetDistribution aggregates one client's holdings across all their
// portfolios into per-type buckets, first-seen order.
func (s *PortfolioService) GetDistribution(ctx context.Context, clientID string) ([]valuation.TypeBucket, error) {
	if _, err := s.clientRepo.GetClientOnID(clientID); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.GetAssetsOnClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client assets: %w", err)
	}

	quotes := s.resolver.Resolve(ctx, assets)
	positions := make([]valuation.Position, 0, len(assets))
	for _, a := range assets {
		positions = append(positions, a.Position())
	}
	return valuation.AggregateByType(positions, pricing.Lookup(quotes)), nil
}

// TopAssets ranks one portfolio's assets by current value, descending, and
// returns the first limit entries. Ties keep portfolio order.
func (s *PortfolioService) TopAssets(ctx context.Context, portfolioID string, limit int) ([]model.AssetValuation, error) {
	summary, err := s.GetSummary(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return valuation.RankByValue(summary.Assets, func(av model.AssetValuation) float64 {
		return av.CurrentValue
	}, limit), nil
}
