package analytics

import (
	"sort"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

// RealizedEvent is the profit or loss locked in by a single sell trade.
// CostBasis uses the weighted-average buy price as of that point in the fold,
// not the final average, which is what makes realized P&L order-dependent.
type RealizedEvent struct {
	TradeID    int64     `json:"tradeId"`
	Instrument string    `json:"instrument"`
	Date       time.Time `json:"date"`
	Month      string    `json:"month"`
	Quantity   float64   `json:"quantity"`
	Proceeds   float64   `json:"proceeds"`
	CostBasis  float64   `json:"costBasis"`
	PnL        float64   `json:"pnl"`
}

// InstrumentPnL is the closing P&L snapshot for one instrument.
//
// Unrealized is a flat-rate placeholder (OpenQty * AvgBuyPrice * rate) until a
// live price feed exists; with real prices it becomes
// OpenQty * (currentPrice - AvgBuyPrice).
type InstrumentPnL struct {
	Instrument  string  `json:"instrument"`
	BoughtQty   float64 `json:"boughtQty"`
	SoldQty     float64 `json:"soldQty"`
	OpenQty     float64 `json:"openQty"`
	AvgBuyPrice float64 `json:"avgBuyPrice"`
	Realized    float64 `json:"realized"`
	Unrealized  float64 `json:"unrealized"`
	Total       float64 `json:"total"`
}

// MonthlyPnL is the realized P&L bucket for one calendar month, with
// per-instrument detail.
type MonthlyPnL struct {
	Month        string             `json:"month"`
	Realized     float64            `json:"realized"`
	ByInstrument map[string]float64 `json:"byInstrument"`
}

// Summary is the full P&L picture for a trade history: per-instrument closing
// snapshots, the individual realized events they are built from, and totals.
type Summary struct {
	Instruments     map[string]InstrumentPnL `json:"instruments"`
	Events          []RealizedEvent          `json:"events"`
	TotalRealized   float64                  `json:"totalRealized"`
	TotalUnrealized float64                  `json:"totalUnrealized"`
	TotalPnL        float64                  `json:"totalPnl"`
}

// monthKey buckets by the calendar date of the trade, deliberately without
// any time-zone adjustment.
func monthKey(date time.Time) string {
	return date.Format("2006-01")
}

// Summarize folds the ordered trade sequence once, maintaining the same
// accumulators as Positions while additionally emitting a RealizedEvent at
// each sell. The event's cost basis is soldQuantity times the average buy
// price at that moment, so the ordering contract documented on the package is
// load-bearing here.
//
// unrealizedRate is the placeholder estimate applied to open positions in the
// absence of market prices; pass the configured rate (0.10 by default).
func Summarize(trades []model.Trade, unrealizedRate float64) Summary {
	positions := make(map[string]Position)
	realized := make(map[string]float64)
	events := []RealizedEvent{}

	for _, t := range trades {
		p := positions[t.Instrument]
		if p.Instrument == "" {
			p.Instrument = t.Instrument
		}

		switch t.Action {
		case model.ActionBuy:
			p.applyBuy(t)
		case model.ActionSell:
			// Capture the average before the sell mutates the position;
			// applySell does not change AvgBuyPrice, but the intent matters
			// if the cost model ever does.
			avgBuy := p.AvgBuyPrice
			p.applySell(t)

			proceeds := t.TradeValue - t.Brokerage
			costBasis := avgBuy * t.Quantity
			event := RealizedEvent{
				TradeID:    t.ID,
				Instrument: t.Instrument,
				Date:       t.Date,
				Month:      monthKey(t.Date),
				Quantity:   t.Quantity,
				Proceeds:   proceeds,
				CostBasis:  costBasis,
				PnL:        proceeds - costBasis,
			}
			events = append(events, event)
			realized[t.Instrument] += event.PnL
		}

		positions[t.Instrument] = p
	}

	summary := Summary{
		Instruments: make(map[string]InstrumentPnL, len(positions)),
		Events:      events,
	}

	for instrument, p := range positions {
		unrealized := p.OpenQty * p.AvgBuyPrice * unrealizedRate
		pnl := InstrumentPnL{
			Instrument:  instrument,
			BoughtQty:   p.BoughtQty,
			SoldQty:     p.SoldQty,
			OpenQty:     p.OpenQty,
			AvgBuyPrice: p.AvgBuyPrice,
			Realized:    realized[instrument],
			Unrealized:  unrealized,
			Total:       realized[instrument] + unrealized,
		}
		summary.Instruments[instrument] = pnl
		summary.TotalRealized += pnl.Realized
		summary.TotalUnrealized += pnl.Unrealized
		summary.TotalPnL += pnl.Total
	}

	return summary
}

// MonthlyBreakdown groups realized events into calendar-month buckets, sorted
// ascending by month. Feeding it the same events that produced a Summary's
// per-instrument realized figures guarantees the two views sum to the same
// total over the same date range.
func MonthlyBreakdown(events []RealizedEvent) []MonthlyPnL {
	buckets := make(map[string]*MonthlyPnL)

	for _, e := range events {
		b, ok := buckets[e.Month]
		if !ok {
			b = &MonthlyPnL{
				Month:        e.Month,
				ByInstrument: make(map[string]float64),
			}
			buckets[e.Month] = b
		}
		b.Realized += e.PnL
		b.ByInstrument[e.Instrument] += e.PnL
	}

	months := make([]MonthlyPnL, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	return months
}

// FilterEvents returns the events whose date falls within [start, end]
// inclusive. A zero start or end leaves that side unbounded.
func FilterEvents(events []RealizedEvent, start, end time.Time) []RealizedEvent {
	filtered := []RealizedEvent{}
	for _, e := range events {
		if !start.IsZero() && e.Date.Before(start) {
			continue
		}
		if !end.IsZero() && e.Date.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
