package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

// SnapshotRepository provides data access methods for the analytics_snapshot
// table, the materialized nightly output of the accounting core.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshots writes the snapshot rows for one date inside a single
// transaction, replacing any rows already materialized for that date so the
// job can be re-run safely.
func (s *SnapshotRepository) UpsertSnapshots(ctx context.Context, date time.Time, snapshots []model.AnalyticsSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	dateStr := date.Format("2006-01-02")

	if _, err := tx.ExecContext(ctx, `DELETE FROM analytics_snapshot WHERE snapshot_date = ?`, dateStr); err != nil {
		return fmt.Errorf("failed to clear existing snapshot: %w", err)
	}

	query := `
		INSERT INTO analytics_snapshot (id, snapshot_date, instrument, open_qty, avg_buy_price, invested_value, realized_pnl, unrealized_pnl, total_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, snap := range snapshots {
		_, err := tx.ExecContext(ctx, query,
			snap.ID, dateStr, snap.Instrument,
			snap.OpenQty, snap.AvgBuyPrice, snap.InvestedValue,
			snap.RealizedPnL, snap.UnrealizedPnL, snap.TotalPnL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return nil
}

// GetHistory retrieves snapshot rows within the inclusive date range, grouped
// by date in ascending order.
func (s *SnapshotRepository) GetHistory(startDate, endDate time.Time) ([]model.SnapshotHistory, error) {
	query := `
		SELECT id, snapshot_date, instrument, open_qty, avg_buy_price, invested_value, realized_pnl, unrealized_pnl, total_pnl
		FROM analytics_snapshot
		WHERE snapshot_date >= ? AND snapshot_date <= ?
		ORDER BY snapshot_date ASC, instrument ASC
	`

	rows, err := s.db.Query(query, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics_snapshot table: %w", err)
	}
	defer rows.Close()

	history := []model.SnapshotHistory{}
	var current *model.SnapshotHistory

	for rows.Next() {
		var snap model.AnalyticsSnapshot
		var dateStr string

		err := rows.Scan(
			&snap.ID,
			&dateStr,
			&snap.Instrument,
			&snap.OpenQty,
			&snap.AvgBuyPrice,
			&snap.InvestedValue,
			&snap.RealizedPnL,
			&snap.UnrealizedPnL,
			&snap.TotalPnL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics_snapshot table results: %w", err)
		}

		snap.SnapshotDate, err = ParseTime(dateStr)
		if err != nil || snap.SnapshotDate.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		day := snap.SnapshotDate.Format("2006-01-02")
		if current == nil || current.Date != day {
			history = append(history, model.SnapshotHistory{Date: day})
			current = &history[len(history)-1]
		}
		current.Instruments = append(current.Instruments, snap)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics_snapshot table: %w", err)
	}

	return history, nil
}
