package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/repository"
)

// TransactionService handles the transaction ledger: trade records written by
// the trading flow plus corporate actions recorded directly.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransaction retrieves a single transaction by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransactionOnID(transactionID)
}

// GetTransactionsOnAsset retrieves an asset's transactions, newest first.
func (s *TransactionService) GetTransactionsOnAsset(assetID string) ([]model.Transaction, error) {
	if _, err := s.assetRepo.GetAssetOnID(assetID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactionsOnAssetID(assetID)
}

// GetTransactionsOnPortfolio retrieves all transactions across a portfolio's
// assets, newest first.
func (s *TransactionService) GetTransactionsOnPortfolio(portfolioID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsOnPortfolioID(portfolioID)
}

// RecordTransaction writes a ledger entry that does not move wallet funds:
// dividends, interest and transfers. Buys and sells go through the trading
// flow instead.
func (s *TransactionService) RecordTransaction(t model.Transaction) (model.Transaction, error) {
	if !t.Type.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: transaction type %q", apperrors.ErrMissingRequiredField, t.Type)
	}
	if t.Type == model.TransactionBuy || t.Type == model.TransactionSell {
		return model.Transaction{}, fmt.Errorf("%w: %s orders must go through trading", apperrors.ErrInvalidStatusTransition, t.Type)
	}
	if t.Quantity < 0 || t.PricePerUnit < 0 {
		return model.Transaction{}, apperrors.ErrNegativeAmount
	}
	if _, err := s.assetRepo.GetAssetOnID(t.AssetID); err != nil {
		return model.Transaction{}, err
	}

	t.ID = uuid.New().String()
	if t.TotalAmount == 0 {
		t.TotalAmount = t.Quantity * t.PricePerUnit
	}
	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}
	return s.transactionRepo.GetTransactionOnID(t.ID)
}
