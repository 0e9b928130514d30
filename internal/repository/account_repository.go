package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all accounts, optionally including archived ones.
func (s *AccountRepository) GetAccounts(includeArchived bool) ([]model.Account, error) {
	query := `
		SELECT id, name, broker, description, is_archived, created_at
		FROM account
	`
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		var a model.Account
		var broker, description sql.NullString
		var createdAtStr string

		err := rows.Scan(&a.ID, &a.Name, &broker, &description, &a.IsArchived, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}

		a.Broker = broker.String
		a.Description = description.String
		a.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID. The second return value
// reports whether the account exists; callers translate a miss into
// apperrors.ErrAccountNotFound.
func (s *AccountRepository) GetAccount(accountID string) (model.Account, bool, error) {
	query := `
		SELECT id, name, broker, description, is_archived, created_at
		FROM account
		WHERE id = ?
	`

	var a model.Account
	var broker, description sql.NullString
	var createdAtStr string

	err := s.db.QueryRow(query, accountID).Scan(&a.ID, &a.Name, &broker, &description, &a.IsArchived, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("failed to scan account table results: %w", err)
	}

	a.Broker = broker.String
	a.Description = description.String
	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, false, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, true, nil
}

// InsertAccount creates a new account record.
func (s *AccountRepository) InsertAccount(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO account (id, name, broker, description, is_archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Broker, a.Description, a.IsArchived,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// UpdateAccount updates an existing account record.
// Returns the number of affected rows so callers can detect missing accounts.
func (s *AccountRepository) UpdateAccount(ctx context.Context, a *model.Account) (int64, error) {
	query := `
		UPDATE account
		SET name = ?, broker = ?, description = ?, is_archived = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, a.Name, a.Broker, a.Description, a.IsArchived, a.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// DeleteAccount removes an account. Trades cascade via the foreign key.
func (s *AccountRepository) DeleteAccount(ctx context.Context, accountID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// CountTrades returns the number of trades recorded against the account.
func (s *AccountRepository) CountTrades(accountID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM trade WHERE account_id = ?`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for account: %w", err)
	}
	return count, nil
}
