package economy

// Error message constants
const (
	ErrMsgBeginTxFailed = "failed to begin transaction: %w"
	ErrMsgCommitFailed  = "failed to commit transaction: %w"

	ErrMsgInvalidQuantityFmt    = "quantity %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
	ErrMsgSelfTransferFmt       = "transfer to self (character %d): %w"
)

// Cache configuration
const (
	// CharacterCacheSize is the maximum number of cached character snapshots
	CharacterCacheSize = 1024

	// CharacterCacheTTLSeconds is the cache entry time-to-live
	CharacterCacheTTLSeconds = 30
)

// Inventory event actions
const (
	ActionGrant   = "grant"
	ActionConsume = "consume"
	ActionEquip   = "equip"
	ActionUnequip = "unequip"
)
