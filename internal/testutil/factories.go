package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Zerodha Main").
//	    WithBroker("Zerodha").
//	    Archived().
//	    Build(t, db)
type AccountBuilder struct {
	ID          string
	Name        string
	Broker      string
	Description string
	IsArchived  bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:          MakeID(),
		Name:        MakeAccountName("Test Account"),
		Broker:      "Test Broker",
		Description: "Test description",
		IsArchived:  false,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithBroker sets a custom broker.
func (b *AccountBuilder) WithBroker(broker string) *AccountBuilder {
	b.Broker = broker
	return b
}

// WithDescription sets a custom description.
func (b *AccountBuilder) WithDescription(desc string) *AccountBuilder {
	b.Description = desc
	return b
}

// Archived marks the account as archived.
func (b *AccountBuilder) Archived() *AccountBuilder {
	b.IsArchived = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, name, broker, description, is_archived)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Broker, b.Description, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:          b.ID,
		Name:        b.Name,
		Broker:      b.Broker,
		Description: b.Description,
		IsArchived:  b.IsArchived,
	}
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade(account.ID).
//	    WithInstrument("INFY").
//	    Sell().
//	    WithQuantity(5).
//	    WithPrice(129.6).
//	    OnDate("2024-03-08").
//	    Build(t, db)
type TradeBuilder struct {
	AccountID  string
	Date       time.Time
	Instrument string
	Action     string
	Quantity   float64
	Price      float64
	Brokerage  float64
	Source     string
	OrderRef   string
	Remarks    string
}

// NewTrade creates a TradeBuilder with sensible defaults for the given account.
func NewTrade(accountID string) *TradeBuilder {
	return &TradeBuilder{
		AccountID:  accountID,
		Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Instrument: "TEST",
		Action:     model.ActionBuy,
		Quantity:   10,
		Price:      100,
		Brokerage:  0,
	}
}

// WithInstrument sets a custom instrument symbol.
func (b *TradeBuilder) WithInstrument(instrument string) *TradeBuilder {
	b.Instrument = instrument
	return b
}

// Buy marks the trade as a buy.
func (b *TradeBuilder) Buy() *TradeBuilder {
	b.Action = model.ActionBuy
	return b
}

// Sell marks the trade as a sell.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.Action = model.ActionSell
	return b
}

// WithQuantity sets a custom quantity.
func (b *TradeBuilder) WithQuantity(qty float64) *TradeBuilder {
	b.Quantity = qty
	return b
}

// WithPrice sets a custom price.
func (b *TradeBuilder) WithPrice(price float64) *TradeBuilder {
	b.Price = price
	return b
}

// WithBrokerage sets a custom brokerage fee.
func (b *TradeBuilder) WithBrokerage(fee float64) *TradeBuilder {
	b.Brokerage = fee
	return b
}

// OnDate sets the trade date from a YYYY-MM-DD string.
func (b *TradeBuilder) OnDate(date string) *TradeBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: invalid trade date " + date)
	}
	b.Date = parsed
	return b
}

// WithRemarks sets custom remarks.
func (b *TradeBuilder) WithRemarks(remarks string) *TradeBuilder {
	b.Remarks = remarks
	return b
}

// Build creates the trade in the database and returns it. The ID is
// store-assigned so builders never collide with each other.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	tradeValue := b.Quantity * b.Price

	query := `
		INSERT INTO trade (account_id, date, instrument, action, quantity, price, trade_value, brokerage, source, order_ref, remarks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		b.AccountID, b.Date.Format("2006-01-02"), b.Instrument, b.Action,
		b.Quantity, b.Price, tradeValue, b.Brokerage, b.Source, b.OrderRef, b.Remarks)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test trade ID: %v", err)
	}

	return model.Trade{
		ID:         id,
		AccountID:  b.AccountID,
		Date:       b.Date,
		Instrument: b.Instrument,
		Action:     b.Action,
		Quantity:   b.Quantity,
		Price:      b.Price,
		TradeValue: tradeValue,
		Brokerage:  b.Brokerage,
		Source:     b.Source,
		OrderRef:   b.OrderRef,
		Remarks:    b.Remarks,
	}
}

// Convenience functions

// CreateAccount creates an account with the given name and default values.
//
// Example usage:
//
//	account := testutil.CreateAccount(t, db, "My Account")
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}

// CreateBuy creates a buy trade with the given parameters and default values.
func CreateBuy(t *testing.T, db *sql.DB, accountID, date, instrument string, qty, price float64) model.Trade {
	t.Helper()
	return NewTrade(accountID).OnDate(date).WithInstrument(instrument).Buy().
		WithQuantity(qty).WithPrice(price).Build(t, db)
}

// CreateSell creates a sell trade with the given parameters and default values.
func CreateSell(t *testing.T, db *sql.DB, accountID, date, instrument string, qty, price float64) model.Trade {
	t.Helper()
	return NewTrade(accountID).OnDate(date).WithInstrument(instrument).Sell().
		WithQuantity(qty).WithPrice(price).Build(t, db)
}
