package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/mvermaat/stock-trade-tracker/internal/repository"
	"github.com/mvermaat/stock-trade-tracker/internal/service"
)

// TestUnrealizedRate is the flat unrealized-return rate used by test
// analytics services, matching the default server configuration.
const TestUnrealizedRate = 0.10

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)

	return service.NewAccountService(accountRepo)
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	return service.NewTradeService(
		tradeRepo,
		accountRepo,
	)
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	tradeService := NewTestTradeService(t, db)
	accountService := NewTestAccountService(t, db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewAnalyticsService(
		tradeService,
		accountService,
		snapshotRepo,
		TestUnrealizedRate,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Zerodha")
//	// Returns: "Zerodha ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
