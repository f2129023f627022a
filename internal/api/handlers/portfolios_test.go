package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/api/handlers"
	"github.com/moneymap/moneymap-backend/internal/model"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates a portfolio for an existing client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, nil))
		client := testutil.NewClient().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolios", map[string]any{
			"clientId": client.ID,
			"name":     "Retirement",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var portfolio model.Portfolio
		if err := json.Unmarshal(rec.Body.Bytes(), &portfolio); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if portfolio.ClientID != client.ID || portfolio.Name != "Retirement" {
			t.Errorf("Unexpected portfolio %+v", portfolio)
		}
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, nil))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolios", map[string]any{
			"clientId": testutil.MakeID(),
			"name":     "Orphaned",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestPortfolioHandler_Portfolios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, nil))
	clientA := testutil.NewClient().Build(t, db)
	clientB := testutil.NewClient().Build(t, db)
	testutil.NewPortfolio(clientA.ID).WithName("Growth").Build(t, db)
	testutil.NewPortfolio(clientB.ID).WithName("Income").Build(t, db)

	t.Run("scopes to a client via query param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolios?clientId="+clientA.ID, nil)
		rec := httptest.NewRecorder()

		handler.Portfolios(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var portfolios []model.Portfolio
		if err := json.Unmarshal(rec.Body.Bytes(), &portfolios); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(portfolios) != 1 || portfolios[0].Name != "Growth" {
			t.Errorf("Expected only Growth, got %+v", portfolios)
		}
	})

	t.Run("malformed clientId returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolios?clientId=not-a-uuid", nil)
		rec := httptest.NewRecorder()

		handler.Portfolios(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestPortfolioHandler_Summary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	feed := testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})
	handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, feed))
	client := testutil.NewClient().Build(t, db)
	portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
	testutil.NewAsset(portfolio.ID).
		WithQuantity(10).
		WithPurchasePrice(150).
		Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolios/"+portfolio.ID+"/summary",
		map[string]string{"uuid": portfolio.ID})
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var summary model.PortfolioSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if summary.TotalValue != 2000 {
		t.Errorf("Expected total value 2000, got %v", summary.TotalValue)
	}
	if summary.TotalCost != 1500 {
		t.Errorf("Expected total cost 1500, got %v", summary.TotalCost)
	}
	if len(summary.Assets) != 1 || summary.Assets[0].CurrentPrice != 200 {
		t.Errorf("Unexpected asset valuations %+v", summary.Assets)
	}
	if len(summary.Distribution) != 1 || summary.Distribution[0].Type != "STOCK" {
		t.Errorf("Unexpected distribution %+v", summary.Distribution)
	}
}

func TestPortfolioHandler_TopAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, nil))
	client := testutil.NewClient().Build(t, db)
	portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
	testutil.NewAsset(portfolio.ID).
		WithSymbol("MSFT", "Microsoft Corp").
		WithQuantity(10).
		WithCurrentPrice(300).
		Build(t, db)
	testutil.NewAsset(portfolio.ID).
		WithQuantity(5).
		WithCurrentPrice(100).
		Build(t, db)

	t.Run("ranks assets by value with a limit", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/portfolios/"+portfolio.ID+"/top-assets",
			map[string]string{"uuid": portfolio.ID})
		req.URL.RawQuery = "limit=1"
		rec := httptest.NewRecorder()

		handler.TopAssets(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var assets []model.AssetValuation
		if err := json.Unmarshal(rec.Body.Bytes(), &assets); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(assets) != 1 || assets[0].Symbol != "MSFT" {
			t.Errorf("Expected MSFT on top, got %+v", assets)
		}
	})

	t.Run("non-numeric limit returns 400", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/portfolios/"+portfolio.ID+"/top-assets",
			map[string]string{"uuid": portfolio.ID})
		req.URL.RawQuery = "limit=ten"
		rec := httptest.NewRecorder()

		handler.TopAssets(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestPortfolioHandler_DeletePortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, nil))
	client := testutil.NewClient().Build(t, db)
	portfolio := testutil.NewPortfolio(client.ID).Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolios/"+portfolio.ID,
		map[string]string{"uuid": portfolio.ID})
	rec := httptest.NewRecorder()

	handler.DeletePortfolio(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	getReq := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolios/"+portfolio.ID,
		map[string]string{"uuid": portfolio.ID})
	getRec := httptest.NewRecorder()
	handler.Portfolio(getRec, getReq)

	if getRec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", getRec.Code)
	}
}
