package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moneymap/moneymap-backend/internal/api/handlers"
	"github.com/moneymap/moneymap-backend/internal/service"
	"github.com/moneymap/moneymap-backend/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(service.NewSystemService(db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp handlers.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Database != "connected" {
		t.Errorf("Unexpected health response %+v", resp)
	}
}

func TestSystemHandler_Version(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSystemHandler(service.NewSystemService(db))

	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var info service.VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if info.AppVersion == "" {
		t.Error("Expected an application version")
	}
	if info.DBVersion != 1 {
		t.Errorf("Expected schema version 1, got %d", info.DBVersion)
	}
}
