package validation

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID    = fmt.Errorf("invalid UUID format")
	ErrInvalidTradeID = fmt.Errorf("invalid trade ID")
)

// Error is a field-keyed validation failure, serialized in error responses.
type Error struct {
	Fields map[string]string `json:"fields"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ParseTradeID checks that a string is a positive integer trade ID and
// returns it.
func ParseTradeID(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTradeID, id)
	}
	return parsed, nil
}
