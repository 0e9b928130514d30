package model

import "time"

// Trade actions. Stored lowercase; anything else is rejected at the
// validation boundary before it reaches the accounting core.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// Trade represents a single buy or sell execution recorded against an account.
// TradeValue is always Quantity * Price; it is computed by NewTrade and never
// accepted from callers, so the stored value cannot drift from its factors.
type Trade struct {
	ID         int64     `json:"id"`
	AccountID  string    `json:"accountId"`
	Date       time.Time `json:"date"`
	Instrument string    `json:"instrument"`
	Action     string    `json:"action"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	TradeValue float64   `json:"tradeValue"`
	Brokerage  float64   `json:"brokerage"`
	Source     string    `json:"source,omitempty"`
	OrderRef   string    `json:"orderRef,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// NewTrade constructs a Trade with the derived TradeValue enforced at
// construction time. The ID is left zero; the repository assigns it on insert.
func NewTrade(accountID string, date time.Time, instrument, action string, quantity, price, brokerage float64) *Trade {
	return &Trade{
		AccountID:  accountID,
		Date:       date,
		Instrument: instrument,
		Action:     action,
		Quantity:   quantity,
		Price:      price,
		TradeValue: quantity * price,
		Brokerage:  brokerage,
		CreatedAt:  time.Now().UTC(),
	}
}

// TradeResponse represents a trade with enriched data for API responses.
// Includes the owning account's name.
type TradeResponse struct {
	ID          int64     `json:"id"`
	AccountID   string    `json:"accountId"`
	AccountName string    `json:"accountName"`
	Date        time.Time `json:"date"`
	Instrument  string    `json:"instrument"`
	Action      string    `json:"action"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	TradeValue  float64   `json:"tradeValue"`
	Brokerage   float64   `json:"brokerage"`
	Source      string    `json:"source,omitempty"`
	OrderRef    string    `json:"orderRef,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
}
