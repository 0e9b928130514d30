package model

import "time"

// Account represents a brokerage account that owns trades.
type Account struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Broker      string    `json:"broker,omitempty"`
	Description string    `json:"description,omitempty"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
