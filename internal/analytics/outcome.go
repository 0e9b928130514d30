package analytics

// OutcomeStats are aggregate trading-outcome statistics over closed
// instruments. Classification is instrument-level: an instrument counts as
// closed once it has both buys and sells, and its aggregate realized P&L
// decides win or loss. This is deliberately coarser than per-lot matching.
type OutcomeStats struct {
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Breakeven    int     `json:"breakeven"`
	WinRate      float64 `json:"winRate"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	ProfitFactor float64 `json:"profitFactor"`
}

// Outcomes classifies each closed instrument in the summary as a win
// (realized > 0), a loss (realized < 0), or breakeven (neither). All derived
// ratios default to zero on an empty denominator so the output is always
// well-formed for presentation.
func Outcomes(summary Summary) OutcomeStats {
	var stats OutcomeStats
	var winSum, lossSum float64

	for _, pnl := range summary.Instruments {
		if pnl.BoughtQty == 0 || pnl.SoldQty == 0 {
			continue // nothing matched, still fully open or data drift
		}

		switch {
		case pnl.Realized > 0:
			stats.Wins++
			winSum += pnl.Realized
		case pnl.Realized < 0:
			stats.Losses++
			lossSum += -pnl.Realized
		default:
			stats.Breakeven++
		}
	}

	if closed := stats.Wins + stats.Losses; closed > 0 {
		stats.WinRate = float64(stats.Wins) / float64(closed) * 100
	}
	if stats.Wins > 0 {
		stats.AvgWin = winSum / float64(stats.Wins)
	}
	if stats.Losses > 0 {
		stats.AvgLoss = lossSum / float64(stats.Losses)
	}
	if stats.AvgLoss > 0 {
		stats.ProfitFactor = stats.AvgWin / stats.AvgLoss
	}

	return stats
}
