// Package analytics is the accounting core of the application: pure,
// synchronous computations over in-memory trade sequences. It performs no I/O
// and holds no state between calls; every function builds its result from
// scratch, so an edited or deleted trade is reflected correctly simply by
// re-running the computation over the current history.
//
// Ordering contract: every function in this package expects its input sorted
// ascending by trade date, with ties broken by ascending ID. Realized P&L is
// path-dependent on that order (the running average buy price at the moment
// of each sale), so callers must preserve it exactly. The repository layer
// queries with ORDER BY date ASC, id ASC for this reason.
package analytics

import "github.com/mvermaat/stock-trade-tracker/internal/model"

// Position is the running aggregate for a single instrument after folding its
// trades in chronological order using the weighted-average cost method.
type Position struct {
	Instrument    string  `json:"instrument"`
	BoughtQty     float64 `json:"boughtQty"`
	SoldQty       float64 `json:"soldQty"`
	InvestedValue float64 `json:"investedValue"`
	SoldValue     float64 `json:"soldValue"`
	AvgBuyPrice   float64 `json:"avgBuyPrice"`
	AvgSellPrice  float64 `json:"avgSellPrice"`
	OpenQty       float64 `json:"openQty"`
}

// applyBuy folds a buy trade into the position. Brokerage is part of the cost
// basis, so the average buy price includes fees.
func (p *Position) applyBuy(t model.Trade) {
	p.BoughtQty += t.Quantity
	p.InvestedValue += t.TradeValue + t.Brokerage
	p.AvgBuyPrice = p.InvestedValue / p.BoughtQty
	p.OpenQty += t.Quantity
}

// applySell folds a sell trade into the position. Brokerage reduces the
// proceeds. A sell with no prior buys drives OpenQty negative and leaves
// AvgBuyPrice at zero; that is accepted input-data drift, not an error, and
// upstream validation is the place to reject it if short selling is not
// intended.
func (p *Position) applySell(t model.Trade) {
	p.SoldQty += t.Quantity
	p.SoldValue += t.TradeValue - t.Brokerage
	p.AvgSellPrice = p.SoldValue / p.SoldQty
	p.OpenQty -= t.Quantity
}

// Positions folds an ordered trade sequence into one Position per instrument.
// The returned map is freshly built on every call and safe for the caller to
// retain. Instruments the sequence never mentions are simply absent; callers
// that need a zero Position for an unknown instrument can use the zero value,
// which is exactly what the fold would produce for an empty history.
func Positions(trades []model.Trade) map[string]Position {
	positions := make(map[string]Position)

	for _, t := range trades {
		p := positions[t.Instrument]
		if p.Instrument == "" {
			p.Instrument = t.Instrument
		}

		switch t.Action {
		case model.ActionBuy:
			p.applyBuy(t)
		case model.ActionSell:
			p.applySell(t)
		}

		positions[t.Instrument] = p
	}

	return positions
}
