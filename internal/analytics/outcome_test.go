package analytics

import (
	"testing"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

func TestOutcomes(t *testing.T) {
	t.Run("one winner and one loser give the worked statistics", func(t *testing.T) {
		trades := []model.Trade{
			// AAPL closes with +120.5 realized.
			trade(1, "2024-01-02", "AAPL", model.ActionBuy, 10, 100, 5),
			trade(2, "2024-01-03", "AAPL", model.ActionBuy, 10, 110, 5),
			trade(3, "2024-01-10", "AAPL", model.ActionSell, 5, 130, 2),
			// MSFT closes with -40 realized: avg 300, sold 4 @ 290.
			trade(4, "2024-01-05", "MSFT", model.ActionBuy, 4, 300, 0),
			trade(5, "2024-01-20", "MSFT", model.ActionSell, 4, 290, 0),
		}

		stats := Outcomes(Summarize(trades, 0))

		if stats.Wins != 1 || stats.Losses != 1 {
			t.Fatalf("Expected 1 win and 1 loss, got %d/%d", stats.Wins, stats.Losses)
		}
		if !almostEqual(stats.WinRate, 50) {
			t.Errorf("Expected winRate 50, got %f", stats.WinRate)
		}
		if !almostEqual(stats.AvgWin, 120.5) {
			t.Errorf("Expected avgWin 120.5, got %f", stats.AvgWin)
		}
		if !almostEqual(stats.AvgLoss, 40) {
			t.Errorf("Expected avgLoss 40, got %f", stats.AvgLoss)
		}
		if !almostEqual(stats.ProfitFactor, 3.0125) {
			t.Errorf("Expected profitFactor 3.0125, got %f", stats.ProfitFactor)
		}
	})

	t.Run("breakeven counts as neither win nor loss", func(t *testing.T) {
		trades := []model.Trade{
			trade(1, "2024-01-02", "AAPL", model.ActionBuy, 10, 100, 0),
			trade(2, "2024-01-10", "AAPL", model.ActionSell, 10, 100, 0),
		}

		stats := Outcomes(Summarize(trades, 0))

		if stats.Wins != 0 || stats.Losses != 0 {
			t.Errorf("Expected no wins or losses, got %d/%d", stats.Wins, stats.Losses)
		}
		if stats.Breakeven != 1 {
			t.Errorf("Expected 1 breakeven, got %d", stats.Breakeven)
		}
		if stats.WinRate != 0 {
			t.Errorf("Expected winRate 0 with no decided trades, got %f", stats.WinRate)
		}
	})

	t.Run("open-only instruments are not classified", func(t *testing.T) {
		trades := []model.Trade{
			trade(1, "2024-01-02", "AAPL", model.ActionBuy, 10, 100, 0),
		}

		stats := Outcomes(Summarize(trades, 0))

		if stats.Wins+stats.Losses+stats.Breakeven != 0 {
			t.Errorf("Expected no classified instruments, got %+v", stats)
		}
	})

	t.Run("empty history yields all-zero statistics", func(t *testing.T) {
		stats := Outcomes(Summarize(nil, 0))

		if stats != (OutcomeStats{}) {
			t.Errorf("Expected zero stats, got %+v", stats)
		}
	})

	t.Run("profit factor is zero when there are no losses", func(t *testing.T) {
		trades := []model.Trade{
			trade(1, "2024-01-02", "AAPL", model.ActionBuy, 10, 100, 0),
			trade(2, "2024-01-10", "AAPL", model.ActionSell, 10, 120, 0),
		}

		stats := Outcomes(Summarize(trades, 0))

		if stats.Wins != 1 {
			t.Fatalf("Expected 1 win, got %d", stats.Wins)
		}
		if stats.ProfitFactor != 0 {
			t.Errorf("Expected profitFactor 0 with no losses, got %f", stats.ProfitFactor)
		}
		if !almostEqual(stats.WinRate, 100) {
			t.Errorf("Expected winRate 100, got %f", stats.WinRate)
		}
	})
}
