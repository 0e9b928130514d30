package model

import "time"

// AnalyticsSnapshot is a materialized per-instrument analytics row for one
// calendar date, written by the nightly snapshot job. It trades freshness for
// cheap history queries: reading a year of portfolio history becomes a single
// indexed range scan instead of a fold over every trade.
type AnalyticsSnapshot struct {
	ID            string    `json:"id"`
	SnapshotDate  time.Time `json:"snapshotDate"`
	Instrument    string    `json:"instrument"`
	OpenQty       float64   `json:"openQty"`
	AvgBuyPrice   float64   `json:"avgBuyPrice"`
	InvestedValue float64   `json:"investedValue"`
	RealizedPnL   float64   `json:"realizedPnl"`
	UnrealizedPnL float64   `json:"unrealizedPnl"`
	TotalPnL      float64   `json:"totalPnl"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// SnapshotHistory groups snapshot rows by date for history responses.
type SnapshotHistory struct {
	Date        string              `json:"date"`
	Instruments []AnalyticsSnapshot `json:"instruments"`
}
