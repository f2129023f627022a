package testutil

import (
	"database/sql"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/pricing"
	"github.com/moneymap/moneymap-backend/internal/repository"
	"github.com/moneymap/moneymap-backend/internal/service"
)

// NewTestResolver builds a pricing resolver over the given feed. A nil feed
// means every live lookup fails, so callers exercise the stored-price
// fallback deterministically.
func NewTestResolver(t *testing.T, feed pricing.QuoteFeed) *pricing.Resolver {
	t.Helper()

	if feed == nil {
		feed = NewMockQuoteFeed(nil)
	}
	return pricing.NewResolver(feed, 4)
}

func NewTestClientService(t *testing.T, db *sql.DB, feed pricing.QuoteFeed) *service.ClientService {
	t.Helper()

	return service.NewClientService(
		repository.NewClientRepository(db),
		repository.NewAssetRepository(db),
		NewTestResolver(t, feed),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, feed pricing.QuoteFeed) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		repository.NewClientRepository(db),
		repository.NewAssetRepository(db),
		NewTestResolver(t, feed),
	)
}

func NewTestAssetService(t *testing.T, db *sql.DB, feed pricing.QuoteFeed) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
		NewTestResolver(t, feed),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAssetRepository(db),
	)
}

func NewTestTradingService(t *testing.T, db *sql.DB, feed pricing.QuoteFeed) *service.TradingService {
	t.Helper()

	return service.NewTradingService(
		repository.NewClientRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		NewTestResolver(t, feed),
	)
}

func NewTestRuleEngine(t *testing.T, db *sql.DB) *service.RuleEngine {
	t.Helper()

	return service.NewRuleEngine(
		repository.NewRuleRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewAlertRepository(db),
	)
}

func NewTestPaymentService(t *testing.T, db *sql.DB) *service.PaymentService {
	t.Helper()

	return service.NewPaymentService(
		repository.NewPaymentRepository(db),
		NewTestRuleEngine(t, db),
	)
}

func NewTestAlertService(t *testing.T, db *sql.DB) *service.AlertService {
	t.Helper()

	return service.NewAlertService(
		repository.NewAlertRepository(db),
		repository.NewAssetRepository(db),
	)
}

func NewTestRuleService(t *testing.T, db *sql.DB) *service.RuleService {
	t.Helper()

	return service.NewRuleService(repository.NewRuleRepository(db))
}

func NewTestReportService(t *testing.T, db *sql.DB, feed pricing.QuoteFeed) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewClientRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		NewTestResolver(t, feed),
	)
}
