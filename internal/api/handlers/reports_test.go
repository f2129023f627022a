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

func TestReportHandler_ClientReport(t *testing.T) {
	t.Run("returns the client's quarterly statement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db,
			testutil.NewMockQuoteFeed(map[string]float64{"AAPL": 200})))

		client := testutil.NewClient().WithName("Ada", "Lovelace").Build(t, db)
		portfolio := testutil.NewPortfolio(client.ID).Build(t, db)
		testutil.NewAsset(portfolio.ID).WithQuantity(10).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/clients/"+client.ID+"/report", map[string]string{"uuid": client.ID})
		rec := httptest.NewRecorder()

		handler.ClientReport(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var report model.QuarterlyReport
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if report.Client.FullName != "Ada Lovelace" {
			t.Errorf("Expected report for Ada Lovelace, got %q", report.Client.FullName)
		}
		if report.Metrics.PortfolioValue != 2000 {
			t.Errorf("Expected portfolio value 2000, got %g", report.Metrics.PortfolioValue)
		}
		if len(report.Holdings) != 1 || report.Holdings[0].Symbol != "AAPL" {
			t.Errorf("Unexpected holdings %+v", report.Holdings)
		}
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db, nil))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/clients/"+id+"/report", map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.ClientReport(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestReportHandler_Reports(t *testing.T) {
	t.Run("returns a statement per active client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewReportHandler(testutil.NewTestReportService(t, db, nil))

		a := testutil.NewClient().Build(t, db)
		b := testutil.NewClient().Build(t, db)
		testutil.NewPortfolio(a.ID).Build(t, db)
		testutil.NewPortfolio(b.ID).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		rec := httptest.NewRecorder()

		handler.Reports(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var reports []model.QuarterlyReport
		if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(reports) != 2 {
			t.Errorf("Expected 2 reports, got %d", len(reports))
		}
	})
}
