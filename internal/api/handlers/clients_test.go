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

func TestClientHandler_CreateClient(t *testing.T) {
	t.Run("creates a client and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/clients", map[string]any{
			"firstName":         "Ada",
			"lastName":          "Lovelace",
			"email":             "ada@example.com",
			"countryCode":       "GB",
			"preferredCurrency": "GBP",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateClient(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var client model.Client
		if err := json.Unmarshal(rec.Body.Bytes(), &client); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if client.FirstName != "Ada" || !client.Active {
			t.Errorf("Unexpected client %+v", client)
		}
	})

	t.Run("validation failure returns 400 with field details", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/clients", map[string]any{
			"firstName": "Ada",
			"email":     "not-an-email",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateClient(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))
		existing := testutil.NewClient().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/clients", map[string]any{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     existing.Email,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateClient(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d", rec.Code)
		}
	})
}

func TestClientHandler_Client(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))
	client := testutil.NewClient().Build(t, db)

	t.Run("returns the client", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/clients/"+client.ID,
			map[string]string{"uuid": client.ID})
		rec := httptest.NewRecorder()

		handler.Client(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var got model.Client
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != client.ID {
			t.Errorf("Expected client %s, got %s", client.ID, got.ID)
		}
	})

	t.Run("unknown client returns 404", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/clients/"+id,
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.Client(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestClientHandler_Wallet(t *testing.T) {
	t.Run("deposit returns the updated balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))
		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/clients/"+client.ID+"/deposit",
			map[string]any{"amount": 150}, map[string]string{"uuid": client.ID})
		rec := httptest.NewRecorder()

		handler.Deposit(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var got model.Client
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.WalletBalance != 250 {
			t.Errorf("Expected balance 250, got %g", got.WalletBalance)
		}
	})

	t.Run("overdrawing withdrawal returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))
		client := testutil.NewClient().WithWalletBalance(100).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/clients/"+client.ID+"/withdraw",
			map[string]any{"amount": 500}, map[string]string{"uuid": client.ID})
		rec := httptest.NewRecorder()

		handler.Withdraw(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestClientHandler_Clients(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewClientHandler(testutil.NewTestClientService(t, db, nil))

	testutil.NewClient().Build(t, db)
	testutil.NewClient().Inactive().Build(t, db)

	t.Run("lists active clients by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		rec := httptest.NewRecorder()

		handler.Clients(rec, req)

		var clients []model.Client
		if err := json.Unmarshal(rec.Body.Bytes(), &clients); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(clients) != 1 {
			t.Errorf("Expected 1 client, got %d", len(clients))
		}
	})

	t.Run("includeInactive widens the listing", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/clients",
			map[string]string{"includeInactive": "true"})
		rec := httptest.NewRecorder()

		handler.Clients(rec, req)

		var clients []model.Client
		if err := json.Unmarshal(rec.Body.Bytes(), &clients); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(clients) != 2 {
			t.Errorf("Expected 2 clients, got %d", len(clients))
		}
	})
}
