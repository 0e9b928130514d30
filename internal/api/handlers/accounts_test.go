package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
	"github.com/mvermaat/stock-trade-tracker/internal/testutil"
)

func setupAccountHandler(t *testing.T) (*AccountHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	as := testutil.NewTestAccountService(t, db)
	return NewAccountHandler(as), db
}

func TestAccountHandler_Accounts(t *testing.T) {
	t.Run("returns empty array when no accounts exist", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
	})

	t.Run("excludes archived accounts by default", func(t *testing.T) {
		handler, db := setupAccountHandler(t)

		testutil.NewAccount().Build(t, db)
		testutil.NewAccount().Archived().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		var response []model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Errorf("Expected 1 account, got %d", len(response))
		}
	})

	t.Run("includes archived accounts when requested", func(t *testing.T) {
		handler, db := setupAccountHandler(t)

		testutil.NewAccount().Build(t, db)
		testutil.NewAccount().Archived().Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/account",
			map[string]string{"archived": "true"},
		)
		w := httptest.NewRecorder()

		handler.Accounts(w, req)

		var response []model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 accounts, got %d", len(response))
		}
	})
}

func TestAccountHandler_GetAccount(t *testing.T) {
	t.Run("returns account by ID", func(t *testing.T) {
		handler, db := setupAccountHandler(t)
		account := testutil.NewAccount().WithName("Zerodha Main").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/account/"+account.ID,
			map[string]string{"uuid": account.ID},
		)
		w := httptest.NewRecorder()

		handler.GetAccount(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Name != "Zerodha Main" {
			t.Errorf("Expected name Zerodha Main, got %q", response.Name)
		}
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/account/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetAccount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("creates account with generated ID", func(t *testing.T) {
		handler, db := setupAccountHandler(t)

		payload, _ := json.Marshal(map[string]string{
			"name":   "New Account",
			"broker": "Zerodha",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/account", bytes.NewReader(payload))
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID == "" {
			t.Error("Expected a generated account ID")
		}
		testutil.AssertRowCount(t, db, "account", 1)
	})

	t.Run("returns 400 when name is missing", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/account", bytes.NewReader([]byte(`{"broker":"Zerodha"}`)))
		w := httptest.NewRecorder()

		handler.CreateAccount(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAccountHandler_UpdateAccount(t *testing.T) {
	t.Run("updates provided fields", func(t *testing.T) {
		handler, db := setupAccountHandler(t)
		account := testutil.NewAccount().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/account/"+account.ID,
			map[string]string{"uuid": account.ID},
		)
		req.Body = newBody([]byte(`{"isArchived": true}`))
		w := httptest.NewRecorder()

		handler.UpdateAccount(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Account
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.IsArchived {
			t.Error("Expected account to be archived")
		}
		if response.Name != account.Name {
			t.Errorf("Expected name unchanged, got %q", response.Name)
		}
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/account/"+id,
			map[string]string{"uuid": id},
		)
		req.Body = newBody([]byte(`{"name": "Renamed"}`))
		w := httptest.NewRecorder()

		handler.UpdateAccount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	t.Run("deletes account without trades", func(t *testing.T) {
		handler, db := setupAccountHandler(t)
		account := testutil.NewAccount().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/account/"+account.ID,
			map[string]string{"uuid": account.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteAccount(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "account", 0)
	})

	t.Run("returns 409 when trades reference the account", func(t *testing.T) {
		handler, db := setupAccountHandler(t)
		account := testutil.NewAccount().Build(t, db)
		testutil.CreateBuy(t, db, account.ID, "2024-01-10", "TCS", 5, 3500)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/account/"+account.ID,
			map[string]string{"uuid": account.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteAccount(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "account", 1)
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/account/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteAccount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
