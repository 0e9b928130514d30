package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/api/request"
)

// ValidTradeAction contains the allowed trade action values. Anything else
// is undefined for the accounting fold and must be rejected here, at the
// write boundary, not inside the core.
var ValidTradeAction = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - accountId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - instrument: Must be non-empty
//   - action: Must be one of: buy, sell
//   - quantity: Must be positive
//   - price: Must be positive
//   - brokerage: Must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AccountID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Instrument) == "" {
		errors["instrument"] = "instrument is required"
	}

	if strings.TrimSpace(req.Action) == "" {
		errors["action"] = "action is required"
	} else if !ValidTradeAction[req.Action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", req.Action)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if req.Brokerage < 0.0 {
		errors["brokerage"] = "brokerage cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTrade validates a trade update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.AccountID != nil {
		if err := ValidateUUID(*req.AccountID); err != nil {
			return err
		}
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Instrument != nil && strings.TrimSpace(*req.Instrument) == "" {
		errors["instrument"] = "instrument is required"
	}
	if req.Action != nil {
		if strings.TrimSpace(*req.Action) == "" {
			errors["action"] = "action is required"
		} else if !ValidTradeAction[*req.Action] {
			errors["action"] = fmt.Sprintf("invalid action: %s", *req.Action)
		}
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil && *req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}
	if req.Brokerage != nil && *req.Brokerage < 0.0 {
		errors["brokerage"] = "brokerage cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
