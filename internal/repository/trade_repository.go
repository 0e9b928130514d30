package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mvermaat/stock-trade-tracker/internal/apperrors"
	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

// Trade IDs are assigned by the application as MAX(id)+1, so two concurrent
// writers can race on the same value and trip the primary-key constraint.
// Colliding inserts are retried with exponential backoff plus jitter; when
// the attempts are exhausted the insert falls back to the store-assigned
// rowid, which cannot collide.
const (
	insertRetries   = 4 // five attempts total
	insertBaseDelay = 100 * time.Millisecond
	insertJitter    = 100 * time.Millisecond
)

// TradeRepository provides data access methods for the trade table.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// scanTrade reads one trade row. The column order matches tradeColumns.
const tradeColumns = `id, account_id, date, instrument, action, quantity, price, trade_value, brokerage, source, order_ref, remarks, created_at`

func scanTrade(rows interface{ Scan(...any) error }) (model.Trade, error) {
	var t model.Trade
	var dateStr, createdAtStr string
	var source, orderRef, remarks sql.NullString

	err := rows.Scan(
		&t.ID,
		&t.AccountID,
		&dateStr,
		&t.Instrument,
		&t.Action,
		&t.Quantity,
		&t.Price,
		&t.TradeValue,
		&t.Brokerage,
		&source,
		&orderRef,
		&remarks,
		&createdAtStr,
	)
	if err != nil {
		return model.Trade{}, err
	}

	t.Source = source.String
	t.OrderRef = orderRef.String
	t.Remarks = remarks.String

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Trade{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// GetTrades retrieves trades, optionally filtered by account, ordered
// ascending by date with ties broken by ascending ID. That ordering is the
// contract the accounting core depends on; realized P&L is path-dependent on
// it, so do not change the ORDER BY clause without changing the core's
// documentation.
func (s *TradeRepository) GetTrades(accountID string) ([]model.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade
	`
	var args []any
	if accountID != "" {
		query += ` WHERE account_id = ?`
		args = append(args, accountID)
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}
		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// GetTradeResponses retrieves trades enriched with the owning account's
// name, optionally filtered by account, in the same chronological order as
// GetTrades.
func (s *TradeRepository) GetTradeResponses(accountID string) ([]model.TradeResponse, error) {
	query := `
		SELECT
			t.id,
			t.account_id,
			a.name,
			t.date,
			t.instrument,
			t.action,
			t.quantity,
			t.price,
			t.trade_value,
			t.brokerage,
			t.source,
			t.order_ref,
			t.remarks
		FROM trade t
		JOIN account a ON t.account_id = a.id
	`
	var args []any
	if accountID != "" {
		query += ` WHERE t.account_id = ?`
		args = append(args, accountID)
	}
	query += ` ORDER BY t.date ASC, t.id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.TradeResponse{}
	for rows.Next() {
		var t model.TradeResponse
		var dateStr string
		var source, orderRef, remarks sql.NullString

		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.AccountName,
			&dateStr,
			&t.Instrument,
			&t.Action,
			&t.Quantity,
			&t.Price,
			&t.TradeValue,
			&t.Brokerage,
			&source,
			&orderRef,
			&remarks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.Source = source.String
		t.OrderRef = orderRef.String
		t.Remarks = remarks.String

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// GetTrade retrieves a single trade by ID. The second return value reports
// whether the trade exists.
func (s *TradeRepository) GetTrade(tradeID int64) (model.Trade, bool, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trade
		WHERE id = ?
	`

	row := s.db.QueryRow(query, tradeID)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, false, nil
	}
	if err != nil {
		return model.Trade{}, false, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	return t, true, nil
}

// InsertTrade creates a new trade record, assigning the next sequence ID.
//
// The ID assignment races with concurrent writers: MAX(id)+1 read here can be
// claimed by another insert before ours lands. On a primary-key collision the
// insert is retried up to five attempts with exponential backoff starting at
// 100ms plus up to 100ms of jitter. If every attempt collides, the insert
// falls back to letting SQLite assign the rowid.
func (s *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	backoff := retry.WithMaxRetries(insertRetries,
		retry.WithJitter(insertJitter, retry.NewExponential(insertBaseDelay)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var nextID int64
		if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM trade`).Scan(&nextID); err != nil {
			return fmt.Errorf("failed to read next trade ID: %w", err)
		}

		if err := s.insertWithID(ctx, t, nextID); err != nil {
			if isPrimaryKeyViolation(err) {
				return retry.RetryableError(fmt.Errorf("%w: id %d", apperrors.ErrIDCollision, nextID))
			}
			return err
		}

		t.ID = nextID
		return nil
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrIDCollision) {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	// Retries exhausted: let the store assign the identity.
	return s.insertStoreAssigned(ctx, t)
}

func (s *TradeRepository) insertWithID(ctx context.Context, t *model.Trade, id int64) error {
	query := `
		INSERT INTO trade (id, account_id, date, instrument, action, quantity, price, trade_value, brokerage, source, order_ref, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		id, t.AccountID, t.Date.Format("2006-01-02"), t.Instrument, t.Action,
		t.Quantity, t.Price, t.TradeValue, t.Brokerage,
		t.Source, t.OrderRef, t.Remarks,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *TradeRepository) insertStoreAssigned(ctx context.Context, t *model.Trade) error {
	query := `
		INSERT INTO trade (account_id, date, instrument, action, quantity, price, trade_value, brokerage, source, order_ref, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		t.AccountID, t.Date.Format("2006-01-02"), t.Instrument, t.Action,
		t.Quantity, t.Price, t.TradeValue, t.Brokerage,
		t.Source, t.OrderRef, t.Remarks,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assigned trade ID: %w", err)
	}
	t.ID = id
	return nil
}

// isPrimaryKeyViolation reports whether the error is the trade table's
// primary-key constraint firing. modernc.org/sqlite surfaces constraint
// failures as plain errors, so this matches on the SQLite message text.
func isPrimaryKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed: trade.id") ||
		strings.Contains(msg, "constraint failed") && strings.Contains(msg, "trade.id")
}

// UpdateTrade updates an existing trade record.
// Returns the number of affected rows so callers can detect missing trades.
func (s *TradeRepository) UpdateTrade(ctx context.Context, t *model.Trade) (int64, error) {
	query := `
		UPDATE trade
		SET account_id = ?, date = ?, instrument = ?, action = ?, quantity = ?,
			price = ?, trade_value = ?, brokerage = ?, source = ?, order_ref = ?, remarks = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		t.AccountID, t.Date.Format("2006-01-02"), t.Instrument, t.Action,
		t.Quantity, t.Price, t.TradeValue, t.Brokerage,
		t.Source, t.OrderRef, t.Remarks,
		t.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// DeleteTrade removes a trade by ID.
func (s *TradeRepository) DeleteTrade(ctx context.Context, tradeID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, tradeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
