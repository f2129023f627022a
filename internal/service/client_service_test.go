package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/apperrors"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func TestClientService_CreateClient(t *testing.T) {
	t.Run("rejects a duplicate email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)

		existing := testutil.NewClient().Build(t, db)

		_, err := svc.CreateClient(model.Client{
			FirstName: "Another",
			LastName:  "Person",
			Email:     existing.Email,
		})
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("new clients start active with an empty wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)

		client, err := svc.CreateClient(model.Client{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     testutil.MakeEmail(),
		})
		if err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}
		if !client.Active {
			t.Error("Expected new client to be active")
		}
		if client.WalletBalance != 0 {
			t.Errorf("Expected empty wallet, got %g", client.WalletBalance)
		}
	})
}

func TestClientService_GetClients(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestClientService(t, db, nil)

	testutil.NewClient().Build(t, db)
	testutil.NewClient().Inactive().Build(t, db)

	t.Run("hides inactive clients by default", func(t *testing.T) {
		clients, err := svc.GetClients(model.ClientFilter{})
		if err != nil {
			t.Fatalf("GetClients failed: %v", err)
		}
		if len(clients) != 1 {
			t.Errorf("Expected 1 active client, got %d", len(clients))
		}
	})

	t.Run("includes inactive clients on request", func(t *testing.T) {
		clients, err := svc.GetClients(model.ClientFilter{IncludeInactive: true})
		if err != nil {
			t.Fatalf("GetClients failed: %v", err)
		}
		if len(clients) != 2 {
			t.Errorf("Expected 2 clients, got %d", len(clients))
		}
	})
}

func TestClientService_Wallet(t *testing.T) {
	t.Run("deposit grows the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)
		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)

		updated, err := svc.Deposit(client.ID, 250)
		if err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
		if updated.WalletBalance != 350 {
			t.Errorf("Expected balance 350, got %g", updated.WalletBalance)
		}
	})

	t.Run("withdrawal shrinks the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)
		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)

		updated, err := svc.Withdraw(client.ID, 40)
		if err != nil {
			t.Fatalf("Withdraw failed: %v", err)
		}
		if updated.WalletBalance != 60 {
			t.Errorf("Expected balance 60, got %g", updated.WalletBalance)
		}
	})

	t.Run("withdrawal never overdraws", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)
		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)

		_, err := svc.Withdraw(client.ID, 100.01)
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Errorf("Expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestClientService(t, db, nil)
		client := testutil.NewClient().Build(t, db)

		if _, err := svc.Deposit(client.ID, 0); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount on zero deposit, got %v", err)
		}
		if _, err := svc.Withdraw(client.ID, -5); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount on negative withdrawal, got %v", err)
		}
	})
}

func TestClientService_TopClients(t *testing.T) {
	db := testutil.SetupTestDB(t)
	feed := testutil.NewMockQuoteFeed(nil) // stored prices only
	svc := testutil.NewTestClientService(t, db, feed)

	// Rich: 10 shares at stored price 300.
	rich := testutil.NewClient().WithName("Rich", "Holder").Build(t, db)
	richPf := testutil.NewPortfolio(rich.ID).Build(t, db)
	testutil.NewAsset(richPf.ID).WithQuantity(10).WithCurrentPrice(300).Build(t, db)

	// Modest: 5 shares at stored price 100.
	modest := testutil.NewClient().WithName("Modest", "Holder").Build(t, db)
	modestPf := testutil.NewPortfolio(modest.ID).Build(t, db)
	testutil.NewAsset(modestPf.ID).WithQuantity(5).WithCurrentPrice(100).Build(t, db)

	// Empty-handed client ranks last.
	testutil.NewClient().WithName("No", "Holdings").Build(t, db)

	t.Run("ranks by total holdings value", func(t *testing.T) {
		top, err := svc.TopClients(context.Background(), 10)
		if err != nil {
			t.Fatalf("TopClients failed: %v", err)
		}
		if len(top) != 3 {
			t.Fatalf("Expected 3 summaries, got %d", len(top))
		}
		if top[0].ID != rich.ID || top[0].TotalValue != 3000 {
			t.Errorf("Expected rich client first at 3000, got %s at %g", top[0].ID, top[0].TotalValue)
		}
		if top[1].ID != modest.ID || top[1].TotalValue != 500 {
			t.Errorf("Expected modest client second at 500, got %s at %g", top[1].ID, top[1].TotalValue)
		}
		if top[0].AssetCount != 1 {
			t.Errorf("Expected asset count 1, got %d", top[0].AssetCount)
		}
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		top, err := svc.TopClients(context.Background(), 1)
		if err != nil {
			t.Fatalf("TopClients failed: %v", err)
		}
		if len(top) != 1 || top[0].ID != rich.ID {
			t.Errorf("Expected only the rich client, got %+v", top)
		}
	})
}
