package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/finnhub"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// AssetService handles asset business logic: holdings CRUD and price history.
type AssetService struct {
	assetRepo     *repository.AssetRepository
	portfolioRepo *repository.PortfolioRepository
	resolver      *pricing.Resolver
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	resolver *pricing.Resolver,
) *AssetService {
	return &AssetService{
		assetRepo:     assetRepo,
		portfolioRepo: portfolioRepo,
		resolver:      resolver,
	}
}

// GetAssets retrieves all assets of a portfolio.
func (s *AssetService) GetAssets(portfolioID string) ([]model.Asset, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}
	return s.assetRepo.GetAssetsOnPortfolioID(portfolioID)
}

// GetAsset retrieves a single asset by ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	return s.assetRepo.GetAssetOnID(assetID)
}

// CreateAsset registers an existing holding directly, without moving wallet
// funds. Buying through the trading flow is the funded alternative.
func (s *AssetService) CreateAsset(a model.Asset) (model.Asset, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(a.PortfolioID); err != nil {
		return model.Asset{}, err
	}
	if a.Details == nil || !a.Details.AssetType().Valid() {
		return model.Asset{}, fmt.Errorf("%w: asset details", apperrors.ErrMissingRequiredField)
	}
	if _, err := s.assetRepo.GetAssetOnPortfolioAndSymbol(a.PortfolioID, a.Symbol); err == nil {
		return model.Asset{}, fmt.Errorf("%w: %s already held in portfolio", apperrors.ErrDuplicateEntry, a.Symbol)
	} else if !errors.Is(err, apperrors.ErrAssetNotFound) {
		return model.Asset{}, err
	}

	a.ID = uuid.New().String()
	if a.CurrentPrice == 0 {
		a.CurrentPrice = a.PurchasePrice
	}
	if err := s.assetRepo.CreateAsset(a); err != nil {
		return model.Asset{}, fmt.Errorf("failed to create asset: %w", err)
	}
	return s.assetRepo.GetAssetOnID(a.ID)
}

// UpdateAsset updates an asset's mutable fields. Portfolio, type and symbol
// are fixed at creation.
func (s *AssetService) UpdateAsset(a model.Asset) (model.Asset, error) {
	existing, err := s.assetRepo.GetAssetOnID(a.ID)
	if err != nil {
		return model.Asset{}, err
	}
	if a.Details != nil && a.Details.AssetType() != existing.Type() {
		return model.Asset{}, fmt.Errorf("%w: asset type cannot change", apperrors.ErrInvalidStatusTransition)
	}
	if err := s.assetRepo.UpdateAsset(a); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetAssetOnID(a.ID)
}

// DeleteAsset removes an asset and its price history.
func (s *AssetService) DeleteAsset(assetID string) error {
	return s.assetRepo.DeleteAsset(assetID)
}

// RefreshPrice fetches the freshest quote for an asset, persists it as the
// stored snapshot and appends a history point. Returns the updated asset.
func (s *AssetService) RefreshPrice(ctx context.Context, assetID string) (model.Asset, error) {
	a, err := s.assetRepo.GetAssetOnID(assetID)
	if err != nil {
		return model.Asset{}, err
	}

	q := s.resolver.ResolveOne(ctx, a.Symbol, a.CurrentPrice)
	if q.Source != valuation.SourceLive {
		// Nothing fresher than what we already hold.
		return a, nil
	}

	if err := s.assetRepo.UpdateCurrentPrice(a.ID, q.Price); err != nil {
		return model.Asset{}, err
	}
	point := model.AssetPrice{
		ID:      uuid.New().String(),
		AssetID: a.ID,
		Date:    time.Now().UTC(),
		Price:   q.Price,
	}
	if err := s.assetRepo.AddPricePoint(point); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetAssetOnID(a.ID)
}

// GetPriceHistory returns an asset's stored price points for the period.
func (s *AssetService) GetPriceHistory(assetID, period string) ([]model.AssetPrice, error) {
	p, err := finnhub.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if _, err := s.assetRepo.GetAssetOnID(assetID); err != nil {
		return nil, err
	}
	return s.assetRepo.GetPriceHistory(assetID, p.Start(time.Now().UTC()))
}
