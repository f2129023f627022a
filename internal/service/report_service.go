package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

// ReportService builds quarterly client statements from the valuation views
// and the transaction ledger.
type ReportService struct {
	clientRepo      *repository.ClientRepository
	portfolioRepo   *repository.PortfolioRepository
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	resolver        *pricing.Resolver
}

// NewReportService creates a new ReportService with the provided dependencies.
func NewReportService(
	clientRepo *repository.ClientRepository,
	portfolioRepo *repository.PortfolioRepository,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	resolver *pricing.Resolver,
) *ReportService {
	return &ReportService{
		clientRepo:      clientRepo,
		portfolioRepo:   portfolioRepo,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
	}
}

// quarterPeriod labels the calendar quarter containing t, e.g. "Q3 2026".
func quarterPeriod(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", quarter, t.Year())
}

// formatAddress joins the client's address fields, skipping empties.
func formatAddress(c model.Client) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Address, c.City, c.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// GenerateClientReport builds the quarterly statement for one client: all
// holdings across their portfolios valued against the freshest quote
// available, the per-type allocation, and the quarter's transaction flows.
func (s *ReportService) GenerateClientReport(ctx context.Context, clientID string) (model.QuarterlyReport, error) {
	client, err := s.clientRepo.GetClientOnID(clientID)
	if err != nil {
		return model.QuarterlyReport{}, err
	}
	assets, err := s.assetRepo.GetAssetsOnClientID(clientID)
	if err != nil {
		return model.QuarterlyReport{}, fmt.Errorf("failed to load client assets: %w", err)
	}

	quotes := s.resolver.Resolve(ctx, assets)
	now := time.Now().UTC()

	var totalValue float64
	holdings := make([]model.ReportHolding, 0, len(assets))
	positions := make([]valuation.Position, 0, len(assets))
	for _, a := range assets {
		q := quotes[a.Symbol]
		r := valuation.ValuePosition(a.Position(), q)
		holdings = append(holdings, model.ReportHolding{
			Symbol:       a.Symbol,
			Name:         a.Name,
			Type:         a.Type(),
			Quantity:     a.Quantity,
			CurrentPrice: q.Price,
			Value:        r.CurrentValue,
			PriceSource:  r.Source,
		})
		totalValue += r.CurrentValue
		positions = append(positions, a.Position())
	}
	for i := range holdings {
		if totalValue != 0 {
			holdings[i].PortfolioPercent = holdings[i].Value / totalValue * 100
		}
	}
	holdings = valuation.RankByValue(holdings, func(h model.ReportHolding) float64 {
		return h.Value
	}, len(holdings))

	transactions, err := s.clientTransactions(clientID)
	if err != nil {
		return model.QuarterlyReport{}, err
	}

	quarterStart := now.AddDate(0, -3, 0)
	var quarterTx []model.Transaction
	metrics := model.ReportMetrics{
		PortfolioValue: totalValue,
		WalletBalance:  client.WalletBalance,
		NetWorth:       totalValue + client.WalletBalance,
	}
	for _, t := range transactions {
		if t.Date.Before(quarterStart) {
			continue
		}
		quarterTx = append(quarterTx, t)
		switch t.Type {
		case model.TransactionBuy, model.TransactionTransferIn:
			metrics.Invested += t.TotalAmount
		case model.TransactionSell, model.TransactionTransferOut:
			metrics.Withdrawn += t.TotalAmount
		}
	}
	metrics.TransactionCount = len(quarterTx)
	metrics.QuarterReturn = totalValue - metrics.Invested + metrics.Withdrawn
	if metrics.Invested > 0 {
		metrics.ReturnPercent = metrics.QuarterReturn / metrics.Invested * 100
	}

	return model.QuarterlyReport{
		Client: model.ReportClientInfo{
			FullName:          client.FirstName + " " + client.LastName,
			Email:             client.Email,
			Phone:             client.Phone,
			Address:           formatAddress(client),
			PreferredCurrency: client.PreferredCurrency,
			ClientSince:       client.CreatedAt,
		},
		Period:     quarterPeriod(now),
		Metrics:    metrics,
		Holdings:   holdings,
		Allocation: valuation.AggregateByType(positions, pricing.Lookup(quotes)),
		TopTransactions: valuation.RankByValue(transactions, func(t model.Transaction) float64 {
			return t.TotalAmount
		}, 5),
		QuarterTransactions: quarterTx,
		GeneratedAt:         now,
	}, nil
}

// GenerateAllReports builds reports for every active client. A failing client
// is logged and skipped so one broken record never sinks the batch.
func (s *ReportService) GenerateAllReports(ctx context.Context) ([]model.QuarterlyReport, error) {
	clients, err := s.clientRepo.GetClients(model.ClientFilter{})
	if err != nil {
		return nil, err
	}

	reports := make([]model.QuarterlyReport, 0, len(clients))
	for _, c := range clients {
		report, err := s.GenerateClientReport(ctx, c.ID)
		if err != nil {
			log.Printf("Failed to generate report for client %s: %v", c.ID, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// clientTransactions collects the ledger across all the client's portfolios,
// newest first per portfolio.
func (s *ReportService) clientTransactions(clientID string) ([]model.Transaction, error) {
	portfolios, err := s.portfolioRepo.GetPortfoliosOnClientID(clientID)
	if err != nil {
		return nil, err
	}
	var transactions []model.Transaction
	for _, p := range portfolios {
		tx, err := s.transactionRepo.GetTransactionsOnPortfolioID(p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions for portfolio %s: %w", p.ID, err)
		}
		transactions = append(transactions, tx...)
	}
	return transactions, nil
}
