package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
	"github.com/moneymap/moneymap-backend/internal/valuation"
)

func TestReportService_GenerateClientReport(t *testing.T) {
	t.Run("values holdings and ranks them largest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200}))

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithQuantity(10).Build(t, db)
		testutil.NewAsset(portfolio.ID).
			WithSymbol("MSFT", "Microsoft Corp.").
			WithQuantity(5).
			WithCurrentPrice(100).
			Build(t, db)

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		// AAPL 10x200 live, MSFT 5x100 from the stored snapshot.
		if report.Metrics.PortfolioValue != 2500 {
			t.Errorf("Expected portfolio value 2500, got %g", report.Metrics.PortfolioValue)
		}
		if report.Metrics.NetWorth != 2500+client.WalletBalance {
			t.Errorf("Expected net worth %g, got %g", 2500+client.WalletBalance, report.Metrics.NetWorth)
		}
		if len(report.Holdings) != 2 {
			t.Fatalf("Expected 2 holdings, got %d", len(report.Holdings))
		}
		if report.Holdings[0].Symbol != "AAPL" || report.Holdings[1].Symbol != "MSFT" {
			t.Errorf("Expected holdings ranked AAPL, MSFT, got %s, %s",
				report.Holdings[0].Symbol, report.Holdings[1].Symbol)
		}
		if report.Holdings[0].PortfolioPercent != 80 || report.Holdings[1].PortfolioPercent != 20 {
			t.Errorf("Expected 80/20 split, got %g/%g",
				report.Holdings[0].PortfolioPercent, report.Holdings[1].PortfolioPercent)
		}
		if report.Holdings[0].PriceSource != valuation.SourceLive {
			t.Errorf("Expected AAPL priced live, got %q", report.Holdings[0].PriceSource)
		}
		if report.Holdings[1].PriceSource != valuation.SourceStored {
			t.Errorf("Expected MSFT priced from the snapshot, got %q", report.Holdings[1].PriceSource)
		}
	})

	t.Run("labels the current calendar quarter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)
		client := testutil.NewClient().Build(t, db)

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		now := time.Now().UTC()
		want := fmt.Sprintf("Q%d %d", (int(now.Month())-1)/3+1, now.Year())
		if report.Period != want {
			t.Errorf("Expected period %q, got %q", want, report.Period)
		}
	})

	t.Run("only the last three months count toward the quarter flows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200}))

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		asset := testutil.NewAsset(portfolio.ID).WithQuantity(10).Build(t, db)

		now := time.Now().UTC()
		testutil.NewTransaction(asset.ID).
			WithAmounts(5, 200, 1000).
			WithDate(now.AddDate(0, -1, 0)).
			Build(t, db)
		testutil.NewTransaction(asset.ID).
			WithType(model.TransactionSell).
			WithAmounts(2, 200, 400).
			WithDate(now.AddDate(0, 0, -14)).
			Build(t, db)
		// An old purchase sits outside the window.
		testutil.NewTransaction(asset.ID).
			WithAmounts(10, 150, 1500).
			WithDate(now.AddDate(0, -6, 0)).
			Build(t, db)

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		if report.Metrics.Invested != 1000 {
			t.Errorf("Expected invested 1000, got %g", report.Metrics.Invested)
		}
		if report.Metrics.Withdrawn != 400 {
			t.Errorf("Expected withdrawn 400, got %g", report.Metrics.Withdrawn)
		}
		if report.Metrics.TransactionCount != 2 {
			t.Errorf("Expected 2 quarter transactions, got %d", report.Metrics.TransactionCount)
		}

		// 10x200 value, minus 1000 in, plus 400 out.
		if report.Metrics.QuarterReturn != 1400 {
			t.Errorf("Expected quarter return 1400, got %g", report.Metrics.QuarterReturn)
		}
		if report.Metrics.ReturnPercent != 140 {
			t.Errorf("Expected return percent 140, got %g", report.Metrics.ReturnPercent)
		}
	})

	t.Run("a quarter without purchases reports zero return percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200}))

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithQuantity(10).Build(t, db)

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		if report.Metrics.Invested != 0 {
			t.Errorf("Expected no invested amount, got %g", report.Metrics.Invested)
		}
		if report.Metrics.ReturnPercent != 0 {
			t.Errorf("Expected zero return percent, got %g", report.Metrics.ReturnPercent)
		}
	})

	t.Run("top transactions are the five largest by amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		asset := testutil.NewAsset(portfolio.ID).Build(t, db)

		for i := 1; i <= 6; i++ {
			testutil.NewTransaction(asset.ID).
				WithAmounts(1, float64(i*100), float64(i*100)).
				Build(t, db)
		}

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		if len(report.TopTransactions) != 5 {
			t.Fatalf("Expected 5 top transactions, got %d", len(report.TopTransactions))
		}
		if report.TopTransactions[0].TotalAmount != 600 {
			t.Errorf("Expected largest transaction 600 first, got %g", report.TopTransactions[0].TotalAmount)
		}
		if report.TopTransactions[4].TotalAmount != 200 {
			t.Errorf("Expected the smallest of the top five to be 200, got %g", report.TopTransactions[4].TotalAmount)
		}
	})

	t.Run("allocation groups positions by asset type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithQuantity(10).WithCurrentPrice(100).Build(t, db)
		testutil.NewAsset(portfolio.ID).
			WithSymbol("BTC", "Bitcoin").
			WithQuantity(1).
			WithCurrentPrice(500).
			WithDetails(model.CryptoDetails{Blockchain: "Bitcoin"}).
			Build(t, db)

		report, err := svc.GenerateClientReport(context.Background(), client.ID)
		if err != nil {
			t.Fatalf("GenerateClientReport failed: %v", err)
		}

		if len(report.Allocation) != 2 {
			t.Fatalf("Expected 2 allocation buckets, got %d", len(report.Allocation))
		}
		for _, bucket := range report.Allocation {
			switch bucket.Type {
			case string(model.AssetTypeStock):
				if bucket.Value != 1000 {
					t.Errorf("Expected stock bucket 1000, got %g", bucket.Value)
				}
			case string(model.AssetTypeCrypto):
				if bucket.Value != 500 {
					t.Errorf("Expected crypto bucket 500, got %g", bucket.Value)
				}
			default:
				t.Errorf("Unexpected bucket type %q", bucket.Type)
			}
		}
	})

	t.Run("unknown client returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)

		_, err := svc.GenerateClientReport(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrClientNotFound) {
			t.Errorf("Expected ErrClientNotFound, got %v", err)
		}
	})
}

func TestReportService_GenerateAllReports(t *testing.T) {
	t.Run("builds one report per active client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)

		a := testutil.NewClient().WithName("Ada", "Lovelace").Build(t, db)
		b := testutil.NewClient().WithName("Grace", "Hopper").Build(t, db)
		testutil.NewClient().Inactive().Build(t, db)
		testutil.NewPortfolio(a.ID).Build(t, db)
		testutil.NewPortfolio(b.ID).Build(t, db)

		reports, err := svc.GenerateAllReports(context.Background())
		if err != nil {
			t.Fatalf("GenerateAllReports failed: %v", err)
		}

		if len(reports) != 2 {
			t.Fatalf("Expected 2 reports, got %d", len(reports))
		}
		names := map[string]bool{}
		for _, r := range reports {
			names[r.Client.FullName] = true
		}
		if !names["Ada Lovelace"] || !names["Grace Hopper"] {
			t.Errorf("Unexpected report clients %v", names)
		}
	})

	t.Run("a failing client is skipped, not fatal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		testutil.NewPortfolio(client.ID).Build(t, db)

		if _, err := db.Exec(`DROP TABLE "transaction"`); err != nil {
			t.Fatalf("Failed to drop transaction table: %v", err)
		}

		reports, err := svc.GenerateAllReports(context.Background())
		if err != nil {
			t.Fatalf("GenerateAllReports failed: %v", err)
		}
		if len(reports) != 0 {
			t.Errorf("Expected the broken client to be skipped, got %d reports", len(reports))
		}
	})
}
