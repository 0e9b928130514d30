package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
	"github.com/mvermaat/stock-trade-tracker/internal/repository"
	"github.com/mvermaat/stock-trade-tracker/internal/testutil"
)

func setupTradeRepo(t *testing.T) (*repository.TradeRepository, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	account := testutil.NewAccount().Build(t, db)
	return repository.NewTradeRepository(db), account.ID
}

func newTrade(accountID, date string, id int64) *model.Trade {
	parsed, _ := time.Parse("2006-01-02", date)
	trade := model.NewTrade(accountID, parsed, "RELIANCE", model.ActionBuy, 10, 100, 0)
	trade.ID = id
	return trade
}

func TestTradeRepository_InsertTrade(t *testing.T) {
	t.Run("assigns sequential IDs starting at one", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		for want := int64(1); want <= 3; want++ {
			trade := newTrade(accountID, "2024-01-15", 0)
			if err := repo.InsertTrade(context.Background(), trade); err != nil {
				t.Fatalf("InsertTrade failed: %v", err)
			}
			if trade.ID != want {
				t.Errorf("Expected ID %d, got %d", want, trade.ID)
			}
		}
	})

	t.Run("fills gaps left by deletions with max plus one", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		for i := 0; i < 3; i++ {
			if err := repo.InsertTrade(context.Background(), newTrade(accountID, "2024-01-15", 0)); err != nil {
				t.Fatalf("InsertTrade failed: %v", err)
			}
		}
		if _, err := repo.DeleteTrade(context.Background(), 2); err != nil {
			t.Fatalf("DeleteTrade failed: %v", err)
		}

		trade := newTrade(accountID, "2024-01-16", 0)
		if err := repo.InsertTrade(context.Background(), trade); err != nil {
			t.Fatalf("InsertTrade failed: %v", err)
		}

		// Interior gaps are never reused; only the maximum advances.
		if trade.ID != 4 {
			t.Errorf("Expected ID 4, got %d", trade.ID)
		}
	})

	t.Run("concurrent inserts receive distinct IDs", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		const inserts = 10
		ids := make(chan int64, inserts)
		var wg sync.WaitGroup

		for i := 0; i < inserts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				trade := newTrade(accountID, "2024-02-01", 0)
				if err := repo.InsertTrade(context.Background(), trade); err != nil {
					t.Errorf("InsertTrade failed: %v", err)
					return
				}
				ids <- trade.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("Duplicate trade ID assigned: %d", id)
			}
			seen[id] = true
		}
		if len(seen) != inserts {
			t.Errorf("Expected %d distinct IDs, got %d", inserts, len(seen))
		}
	})
}

func TestTradeRepository_GetTrades(t *testing.T) {
	t.Run("returns trades ordered by date then ID", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		// Inserted out of chronological order on purpose.
		dates := []string{"2024-03-01", "2024-01-15", "2024-02-10", "2024-01-15"}
		for _, d := range dates {
			if err := repo.InsertTrade(context.Background(), newTrade(accountID, d, 0)); err != nil {
				t.Fatalf("InsertTrade failed: %v", err)
			}
		}

		trades, err := repo.GetTrades("")
		if err != nil {
			t.Fatalf("GetTrades failed: %v", err)
		}
		if len(trades) != 4 {
			t.Fatalf("Expected 4 trades, got %d", len(trades))
		}

		for i := 1; i < len(trades); i++ {
			prev, cur := trades[i-1], trades[i]
			if cur.Date.Before(prev.Date) {
				t.Errorf("Trades out of date order at index %d: %v before %v", i, cur.Date, prev.Date)
			}
			if cur.Date.Equal(prev.Date) && cur.ID < prev.ID {
				t.Errorf("Same-date trades out of ID order at index %d: %d before %d", i, cur.ID, prev.ID)
			}
		}
	})

	t.Run("filters by account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTradeRepository(db)

		first := testutil.NewAccount().Build(t, db)
		second := testutil.NewAccount().Build(t, db)
		testutil.CreateBuy(t, db, first.ID, "2024-01-10", "TCS", 5, 3500)
		testutil.CreateBuy(t, db, second.ID, "2024-01-11", "INFY", 8, 1500)

		trades, err := repo.GetTrades(first.ID)
		if err != nil {
			t.Fatalf("GetTrades failed: %v", err)
		}
		if len(trades) != 1 {
			t.Fatalf("Expected 1 trade, got %d", len(trades))
		}
		if trades[0].Instrument != "TCS" {
			t.Errorf("Expected TCS, got %s", trades[0].Instrument)
		}
	})
}

func TestTradeRepository_GetTrade(t *testing.T) {
	t.Run("returns stored trade by ID", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		inserted := newTrade(accountID, "2024-01-15", 0)
		inserted.Brokerage = 12.5
		if err := repo.InsertTrade(context.Background(), inserted); err != nil {
			t.Fatalf("InsertTrade failed: %v", err)
		}

		trade, found, err := repo.GetTrade(inserted.ID)
		if err != nil {
			t.Fatalf("GetTrade failed: %v", err)
		}
		if !found {
			t.Fatal("Expected trade to be found")
		}
		if trade.TradeValue != 1000 {
			t.Errorf("Expected trade value 1000, got %v", trade.TradeValue)
		}
		if trade.Brokerage != 12.5 {
			t.Errorf("Expected brokerage 12.5, got %v", trade.Brokerage)
		}
	})

	t.Run("reports not found for unknown ID", func(t *testing.T) {
		repo, _ := setupTradeRepo(t)

		_, found, err := repo.GetTrade(99)
		if err != nil {
			t.Fatalf("GetTrade failed: %v", err)
		}
		if found {
			t.Error("Expected trade to be absent")
		}
	})
}

func TestTradeRepository_UpdateTrade(t *testing.T) {
	t.Run("reports zero rows for unknown trade", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		affected, err := repo.UpdateTrade(context.Background(), newTrade(accountID, "2024-01-15", 42))
		if err != nil {
			t.Fatalf("UpdateTrade failed: %v", err)
		}
		if affected != 0 {
			t.Errorf("Expected 0 rows affected, got %d", affected)
		}
	})

	t.Run("persists changed fields", func(t *testing.T) {
		repo, accountID := setupTradeRepo(t)

		trade := newTrade(accountID, "2024-01-15", 0)
		if err := repo.InsertTrade(context.Background(), trade); err != nil {
			t.Fatalf("InsertTrade failed: %v", err)
		}

		trade.Quantity = 20
		trade.TradeValue = trade.Quantity * trade.Price
		affected, err := repo.UpdateTrade(context.Background(), trade)
		if err != nil {
			t.Fatalf("UpdateTrade failed: %v", err)
		}
		if affected != 1 {
			t.Fatalf("Expected 1 row affected, got %d", affected)
		}

		stored, _, err := repo.GetTrade(trade.ID)
		if err != nil {
			t.Fatalf("GetTrade failed: %v", err)
		}
		if stored.Quantity != 20 || stored.TradeValue != 2000 {
			t.Errorf("Expected quantity 20 and value 2000, got %v and %v", stored.Quantity, stored.TradeValue)
		}
	})
}

func TestTradeRepository_DeleteTrade(t *testing.T) {
	repo, accountID := setupTradeRepo(t)

	trade := newTrade(accountID, "2024-01-15", 0)
	if err := repo.InsertTrade(context.Background(), trade); err != nil {
		t.Fatalf("InsertTrade failed: %v", err)
	}

	affected, err := repo.DeleteTrade(context.Background(), trade.ID)
	if err != nil {
		t.Fatalf("DeleteTrade failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 row affected, got %d", affected)
	}

	affected, err = repo.DeleteTrade(context.Background(), trade.ID)
	if err != nil {
		t.Fatalf("DeleteTrade failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("Expected 0 rows affected on second delete, got %d", affected)
	}
}
