package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// TradingService executes buy and sell orders against a client's wallet.
// Orders fill at the freshest resolvable price for the catalog symbol.
type TradingService struct {
	clientRepo      *repository.ClientRepository
	portfolioRepo   *repository.PortfolioRepository
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	resolver        *pricing.Resolver
}

// NewTradingService creates a new TradingService with the provided dependencies.
func NewTradingService(
	clientRepo *repository.ClientRepository,
	portfolioRepo *repository.PortfolioRepository,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	resolver *pricing.Resolver,
) *TradingService {
	return &TradingService{
		clientRepo:      clientRepo,
		portfolioRepo:   portfolioRepo,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
	}
}

// TradeResult describes a filled order.
type TradeResult struct {
	Transaction   model.Transaction `json:"transaction"`
	Asset         model.Asset       `json:"asset"`
	WalletBalance float64           `json:"walletBalance"`
}

// fillPrice resolves the execution price for a catalog symbol: live quote
// first, then the asset's stored snapshot, then the catalog reference price.
func (s *TradingService) fillPrice(ctx context.Context, entry model.CatalogEntry, storedPrice float64) float64 {
	q := s.resolver.ResolveOne(ctx, entry.Symbol, storedPrice)
	if q.Source == valuation.SourceNone {
		return entry.ReferencePrice
	}
	return q.Price
}

// Buy purchases quantity of a catalog symbol into the portfolio, funded by
// the owning client's wallet. An existing holding of the same symbol grows
// with a weighted-average purchase price; otherwise a new asset is created.
func (s *TradingService) Buy(ctx context.Context, portfolioID, symbol string, quantity float64) (TradeResult, error) {
	if quantity <= 0 {
		return TradeResult{}, fmt.Errorf("%w: quantity must be positive", apperrors.ErrNegativeAmount)
	}
	entry, ok := model.FindCatalogEntry(symbol)
	if !ok {
		return TradeResult{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotTradable, symbol)
	}

	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return TradeResult{}, err
	}
	client, err := s.clientRepo.GetClientOnID(portfolio.ClientID)
	if err != nil {
		return TradeResult{}, err
	}

	existing, err := s.assetRepo.GetAssetOnPortfolioAndSymbol(portfolioID, symbol)
	held := err == nil
	if err != nil && !errors.Is(err, apperrors.ErrAssetNotFound) {
		return TradeResult{}, err
	}

	var storedPrice float64
	if held {
		storedPrice = existing.CurrentPrice
	}
	price := s.fillPrice(ctx, entry, storedPrice)
	cost := quantity * price

	if !client.HasSufficientFunds(cost) {
		return TradeResult{}, fmt.Errorf("%w: balance %.2f, order cost %.2f",
			apperrors.ErrInsufficientFunds, client.WalletBalance, cost)
	}

	var asset model.Asset
	if held {
		// Weighted-average cost basis across the old and new lots.
		totalQty := existing.Quantity + quantity
		existing.PurchasePrice = (existing.Quantity*existing.PurchasePrice + cost) / totalQty
		existing.Quantity = totalQty
		existing.CurrentPrice = price
		if err := s.assetRepo.UpdateAsset(existing); err != nil {
			return TradeResult{}, err
		}
		asset = existing
	} else {
		asset = model.Asset{
			ID:            uuid.New().String(),
			PortfolioID:   portfolioID,
			Symbol:        entry.Symbol,
			Name:          entry.Name,
			Quantity:      quantity,
			PurchasePrice: price,
			PurchaseDate:  time.Now().UTC(),
			CurrentPrice:  price,
			Details:       entry.DefaultDetails(),
		}
		if err := s.assetRepo.CreateAsset(asset); err != nil {
			return TradeResult{}, err
		}
	}

	if err := s.clientRepo.UpdateWalletBalance(client.ID, client.WalletBalance-cost); err != nil {
		return TradeResult{}, err
	}

	tx := model.Transaction{
		ID:           uuid.New().String(),
		AssetID:      asset.ID,
		Type:         model.TransactionBuy,
		Quantity:     quantity,
		PricePerUnit: price,
		TotalAmount:  cost,
		Date:         time.Now().UTC(),
	}
	if err := s.transactionRepo.CreateTransaction(tx); err != nil {
		return TradeResult{}, fmt.Errorf("failed to record buy transaction: %w", err)
	}

	asset, err = s.assetRepo.GetAssetOnID(asset.ID)
	if err != nil {
		return TradeResult{}, err
	}
	return TradeResult{
		Transaction:   tx,
		Asset:         asset,
		WalletBalance: client.WalletBalance - cost,
	}, nil
}

// Sell disposes of quantity of a holding, crediting the proceeds to the
// owning client's wallet. Selling the full position leaves the asset at
// quantity zero so its transaction history survives.
func (s *TradingService) Sell(ctx context.Context, portfolioID, symbol string, quantity float64) (TradeResult, error) {
	if quantity <= 0 {
		return TradeResult{}, fmt.Errorf("%w: quantity must be positive", apperrors.ErrNegativeAmount)
	}
	entry, ok := model.FindCatalogEntry(symbol)
	if !ok {
		return TradeResult{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotTradable, symbol)
	}

	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return TradeResult{}, err
	}
	client, err := s.clientRepo.GetClientOnID(portfolio.ClientID)
	if err != nil {
		return TradeResult{}, err
	}

	asset, err := s.assetRepo.GetAssetOnPortfolioAndSymbol(portfolioID, symbol)
	if err != nil {
		return TradeResult{}, err
	}
	if asset.Quantity < quantity {
		return TradeResult{}, fmt.Errorf("%w: holding %g, requested %g",
			apperrors.ErrInsufficientQuantity, asset.Quantity, quantity)
	}

	price := s.fillPrice(ctx, entry, asset.CurrentPrice)
	proceeds := quantity * price

	asset.Quantity -= quantity
	asset.CurrentPrice = price
	if err := s.assetRepo.UpdateAsset(asset); err != nil {
		return TradeResult{}, err
	}

	if err := s.clientRepo.UpdateWalletBalance(client.ID, client.WalletBalance+proceeds); err != nil {
		return TradeResult{}, err
	}

	tx := model.Transaction{
		ID:           uuid.New().String(),
		AssetID:      asset.ID,
		Type:         model.TransactionSell,
		Quantity:     quantity,
		PricePerUnit: price,
		TotalAmount:  proceeds,
		Date:         time.Now().UTC(),
	}
	if err := s.transactionRepo.CreateTransaction(tx); err != nil {
		return TradeResult{}, fmt.Errorf("failed to record sell transaction: %w", err)
	}

	return TradeResult{
		Transaction:   tx,
		Asset:         asset,
		WalletBalance: client.WalletBalance + proceeds,
	}, nil
}
