package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrAccountInUse indicates that an account cannot be deleted because trades reference it.
	ErrAccountInUse = errors.New("account is in use")

	// ErrIDCollision indicates that an application-assigned trade ID collided
	// with a concurrent writer. The write path retries on this error.
	ErrIDCollision = errors.New("trade ID collision")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// Account operation errors
	ErrFailedToRetrieveAccounts = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveAccount  = errors.New("failed to retrieve account")

	// Trade operation errors
	ErrFailedToRetrieveTrades = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTrade  = errors.New("failed to retrieve trade")

	// Analytics operation errors
	ErrFailedToComputePositions = errors.New("failed to compute positions")
	ErrFailedToComputePnL       = errors.New("failed to compute profit and loss")
	ErrFailedToComputeOutcomes  = errors.New("failed to compute outcome statistics")
	ErrFailedToRetrieveHistory  = errors.New("failed to retrieve analytics history")
	ErrFailedToRebuildSnapshot  = errors.New("failed to rebuild analytics snapshot")
)
