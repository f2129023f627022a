package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// ClientService handles client and wallet business logic.
type ClientService struct {
	clientRepo *repository.ClientRepository
	assetRepo  *repository.AssetRepository
	resolver   *pricing.Resolver
}

// NewClientService creates a new ClientService with the provided dependencies.
func NewClientService(
	clientRepo *repository.ClientRepository,
	assetRepo *repository.AssetRepository,
	resolver *pricing.Resolver,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		assetRepo:  assetRepo,
		resolver:   resolver,
	}
}

// GetClients retrieves clients matching the filter.
func (s *ClientService) GetClients(filter model.ClientFilter) ([]model.Client, error) {
	return s.clientRepo.GetClients(filter)
}

// GetClient retrieves a single client by ID.
func (s *ClientService) GetClient(clientID string) (model.Client, error) {
	return s.clientRepo.GetClientOnID(clientID)
}

// CreateClient registers a new client with an empty wallet. Email must be
// unique across clients.
func (s *ClientService) CreateClient(c model.Client) (model.Client, error) {
	if _, err := s.clientRepo.GetClientOnEmail(c.Email); err == nil {
		return model.Client{}, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicateEntry, c.Email)
	} else if !errors.Is(err, apperrors.ErrClientNotFound) {
		return model.Client{}, err
	}

	c.ID = uuid.New().String()
	c.WalletBalance = 0
	c.Active = true
	if err := s.clientRepo.CreateClient(c); err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return s.clientRepo.GetClientOnID(c.ID)
}

// UpdateClient updates a client's profile. The wallet balance is not
// touched here; money moves only through Deposit, Withdraw and trades.
func (s *ClientService) UpdateClient(c model.Client) (model.Client, error) {
	existing, err := s.clientRepo.GetClientOnID(c.ID)
	if err != nil {
		return model.Client{}, err
	}
	if c.Email != existing.Email {
		if _, err := s.clientRepo.GetClientOnEmail(c.Email); err == nil {
			return model.Client{}, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicateEntry, c.Email)
		} else if !errors.Is(err, apperrors.ErrClientNotFound) {
			return model.Client{}, err
		}
	}
	if err := s.clientRepo.UpdateClient(c); err != nil {
		return model.Client{}, err
	}
	return s.clientRepo.GetClientOnID(c.ID)
}

// DeleteClient removes a client and, via cascade, their portfolios and
// assets.
func (s *ClientService) DeleteClient(clientID string) error {
	return s.clientRepo.DeleteClient(clientID)
}

// Deposit adds funds to the client's wallet.
func (s *ClientService) Deposit(clientID string, amount float64) (model.Client, error) {
	if amount <= 0 {
		return model.Client{}, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrNegativeAmount)
	}
	c, err := s.clientRepo.GetClientOnID(clientID)
	if err != nil {
		return model.Client{}, err
	}
	if err := s.clientRepo.UpdateWalletBalance(clientID, c.WalletBalance+amount); err != nil {
		return model.Client{}, err
	}
	return s.clientRepo.GetClientOnID(clientID)
}

// Withdraw removes funds from the client's wallet. The balance never goes
// negative.
func (s *ClientService) Withdraw(clientID string, amount float64) (model.Client, error) {
	if amount <= 0 {
		return model.Client{}, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrNegativeAmount)
	}
	c, err := s.clientRepo.GetClientOnID(clientID)
	if err != nil {
		return model.Client{}, err
	}
	if !c.HasSufficientFunds(amount) {
		return model.Client{}, fmt.Errorf("%w: balance %.2f, requested %.2f",
			apperrors.ErrInsufficientFunds, c.WalletBalance, amount)
	}
	if err := s.clientRepo.UpdateWalletBalance(clientID, c.WalletBalance-amount); err != nil {
		return model.Client{}, err
	}
	return s.clientRepo.GetClientOnID(clientID)
}

// TopClients ranks active clients by total holdings value, descending, and
// returns the first limit entries. Ties keep client-list order.
func (s *ClientService) TopClients(ctx context.Context, limit int) ([]model.ClientSummary, error) {
	clients, err := s.clientRepo.GetClients(model.ClientFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load clients for ranking: %w", err)
	}

	summaries := make([]model.ClientSummary, 0, len(clients))
	for _, c := range clients {
		assets, err := s.assetRepo.GetAssetsOnClientID(c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assets for client %s: %w", c.ID, err)
		}

		quotes := s.resolver.Resolve(ctx, assets)
		var total float64
		for _, a := range assets {
			total += valuation.ValuePosition(a.Position(), quotes[a.Symbol]).CurrentValue
		}

		summaries = append(summaries, model.ClientSummary{
			ID:         c.ID,
			FirstName:  c.FirstName,
			LastName:   c.LastName,
			Email:      c.Email,
			TotalValue: total,
			AssetCount: len(assets),
		})
	}

	return valuation.RankByValue(summaries, func(cs model.ClientSummary) float64 {
		return cs.TotalValue
	}, limit), nil
}
