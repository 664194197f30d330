package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound = "character not found"

	// Ledger errors
	ErrMsgInvalidAmount     = "invalid amount"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Inventory errors
	ErrMsgItemNotOwned = "item not owned"
	ErrMsgItemNotFound = "item not found"
	ErrMsgSlotInvalid  = "invalid equip slot"

	// Task errors
	ErrMsgAlreadyClaimed = "reward already claimed"
	ErrMsgNotCompleted   = "task not completed"
	ErrMsgTaskNotFound   = "task not found"

	// Contract errors
	ErrMsgContractNotFound = "contract not found"

	// Concurrency errors
	ErrMsgBusy     = "character is busy, try again"
	ErrMsgConflict = "conditional update lost a race"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)

	// Ledger errors
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Inventory errors
	ErrItemNotOwned = errors.New(ErrMsgItemNotOwned)
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrSlotInvalid  = errors.New(ErrMsgSlotInvalid)

	// Task errors
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)
	ErrNotCompleted   = errors.New(ErrMsgNotCompleted)
	ErrTaskNotFound   = errors.New(ErrMsgTaskNotFound)

	// Contract errors
	ErrContractNotFound = errors.New(ErrMsgContractNotFound)

	// Concurrency errors
	// ErrBusy surfaces a lock-wait timeout; callers may retry with backoff.
	ErrBusy = errors.New(ErrMsgBusy)
	// ErrConflict surfaces a conditional update that lost a race; callers
	// may retry after re-reading state.
	ErrConflict = errors.New(ErrMsgConflict)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsRetryable reports whether the caller should retry the operation
// automatically (with backoff). Every other domain error is terminal
// for the request and must surface a user-facing message.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrConflict)
}
