package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain
// consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter error messages
	ErrMsgMissingQueryParam  = "Missing %s query parameter"
	ErrMsgInvalidCharacterID = "Invalid character ID"
	ErrMsgInvalidContractID  = "Invalid contract ID"
	ErrMsgInvalidTaskID      = "Invalid task ID"

	// Character error messages
	ErrMsgRegisterFailed     = "Failed to register character"
	ErrMsgGetCharacterFailed = "Failed to get character"
	ErrMsgGetInventoryFailed = "Failed to get inventory"

	// Shop error messages
	ErrMsgBuyItemFailed  = "Failed to buy item"
	ErrMsgSellItemFailed = "Failed to sell item"
	ErrMsgEquipFailed    = "Failed to equip item"
	ErrMsgUnequipFailed  = "Failed to unequip item"

	// Bank error messages
	ErrMsgDepositFailed  = "Failed to deposit"
	ErrMsgWithdrawFailed = "Failed to withdraw"
	ErrMsgTransferFailed = "Failed to transfer"

	// Task error messages
	ErrMsgListTasksFailed      = "Failed to list tasks"
	ErrMsgGetProgressFailed    = "Failed to get task progress"
	ErrMsgUpdateProgressFailed = "Failed to record progress"
	ErrMsgClaimRewardFailed    = "Failed to claim reward"

	// Contract error messages
	ErrMsgPostContractFailed    = "Failed to post contract"
	ErrMsgFulfillContractFailed = "Failed to fulfill contract"
	ErrMsgGetContractFailed     = "Failed to get contract"
	ErrMsgListContractsFailed   = "Failed to list contracts"
)

// Success messages for API responses
const (
	MsgTransferSuccess = "Transfer completed"
	MsgUnequipSuccess  = "Item unequipped"
	MsgEquipSuccess    = "Item equipped"
	MsgProgressSuccess = "Progress recorded"
)
