package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTradingService_Buy(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a new position funded by the wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
		svc := testutil.NewTestTradingService(t, db, feed)

		client := testutil.NewClient().WithWalletBalance(5000).Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

		result, err := svc.Buy(ctx, portfolio.ID, "AAPL", 10)
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		if result.Asset.Symbol != "AAPL" || result.Asset.Quantity != 10 {
			t.Errorf("Expected 10 AAPL, got %g %s", result.Asset.Quantity, result.Asset.Symbol)
		}
		if result.Asset.PurchasePrice != 200 {
			t.Errorf("Expected fill at live price 200, got %g", result.Asset.PurchasePrice)
		}
		if result.WalletBalance != 3000 {
			t.Errorf("Expected wallet 5000-2000=3000, got %g", result.WalletBalance)
		}
		if result.Transaction.Type != model.TransactionBuy || result.Transaction.TotalAmount != 2000 {
			t.Errorf("Unexpected transaction: %+v", result.Transaction)
		}
	})

	t.Run("grows an existing position with weighted-average cost basis", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
		svc := testutil.NewTestTradingService(t, db, feed)

		client := testutil.NewClient().WithWalletBalance(10000).Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).
			WithSymbol("AAPL", "Apple Inc.").
			WithQuantity(10).
			WithPurchasePrice(100).
			WithCurrentPrice(150).
			Build(t, db)

		result, err := svc.Buy(ctx, portfolio.ID, "AAPL", 10)
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		// 10 @ 100 + 10 @ 200 averages to 150.
		if result.Asset.Quantity != 20 {
			t.Errorf("Expected quantity 20, got %g", result.Asset.Quantity)
		}
		if !almostEqual(result.Asset.PurchasePrice, 150) {
			t.Errorf("Expected averaged cost basis 150, got %g", result.Asset.PurchasePrice)
		}
	})

	t.Run("falls back to the catalog reference price when the feed is down", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(nil)
		svc := testutil.NewTestTradingService(t, db, feed)

		client := testutil.NewClient().WithWalletBalance(100000).Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

		result, err := svc.Buy(ctx, portfolio.ID, "BTC", 1)
		if err != nil {
			t.Fatalf("Buy failed: %v", err)
		}

		entry, _ := model.FindCatalogEntry("BTC")
		if result.Transaction.PricePerUnit != entry.ReferencePrice {
			t.Errorf("Expected fill at reference price %g, got %g",
				entry.ReferencePrice, result.Transaction.PricePerUnit)
		}
	})

	t.Run("rejects an order the wallet cannot cover", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
		svc := testutil.NewTestTradingService(t, db, feed)

		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

		_, err := svc.Buy(ctx, portfolio.ID, "AAPL", 10)
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Errorf("Expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("rejects symbols outside the catalog", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradingService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

		_, err := svc.Buy(ctx, portfolio.ID, "ENRON", 1)
		if !errors.Is(err, apperrors.ErrSymbolNotTradable) {
			t.Errorf("Expected ErrSymbolNotTradable, got %v", err)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradingService(t, db, nil)

		_, err := svc.Buy(ctx, testutil.MakeID(), "AAPL", 0)
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})
}

func TestTradingService_Sell(t *testing.T) {
	ctx := context.Background()

	t.Run("credits proceeds to the wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
		svc := testutil.NewTestTradingService(t, db, feed)

		client := testutil.NewClient().WithWalletBalance(1000).Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).
			WithSymbol("AAPL", "Apple Inc.").
			WithQuantity(10).
			WithCurrentPrice(150).
			Build(t, db)

		result, err := svc.Sell(ctx, portfolio.ID, "AAPL", 4)
		if err != nil {
			t.Fatalf("Sell failed: %v", err)
		}

		if result.Asset.Quantity != 6 {
			t.Errorf("Expected remaining quantity 6, got %g", result.Asset.Quantity)
		}
		if result.WalletBalance != 1800 {
			t.Errorf("Expected wallet 1000+800=1800, got %g", result.WalletBalance)
		}
		if result.Transaction.Type != model.TransactionSell {
			t.Errorf("Expected SELL transaction, got %s", result.Transaction.Type)
		}
	})

	t.Run("full sale keeps the asset at quantity zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
		svc := testutil.NewTestTradingService(t, db, feed)
		txSvc := testutil.NewTestTransactionService(t, db)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		asset := testutil.NewAsset(portfolio.ID).WithQuantity(10).Build(t, db)

		result, err := svc.Sell(ctx, portfolio.ID, "AAPL", 10)
		if err != nil {
			t.Fatalf("Sell failed: %v", err)
		}
		if result.Asset.Quantity != 0 {
			t.Errorf("Expected quantity 0 after full sale, got %g", result.Asset.Quantity)
		}

		// Transaction history survives the liquidation.
		txs, err := txSvc.GetTransactionsOnAsset(asset.ID)
		if err != nil {
			t.Fatalf("GetTransactionsOnAsset failed: %v", err)
		}
		if len(txs) != 1 {
			t.Errorf("Expected the sell transaction to remain, got %d", len(txs))
		}
	})

	t.Run("rejects selling more than held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradingService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithQuantity(5).Build(t, db)

		_, err := svc.Sell(ctx, portfolio.ID, "AAPL", 6)
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Errorf("Expected ErrInsufficientQuantity, got %v", err)
		}
	})

	t.Run("rejects selling a symbol not held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTradingService(t, db, nil)

		client := testutil.NewClient().Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

		_, err := svc.Sell(ctx, portfolio.ID, "BTC", 1)
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}
