package domain

// Event kind strings emitted by the engine after a successful commit.
// Consumed by the notification layer; never part of the transactional
// boundary.
const (
	EventKindBalance   = "balance"
	EventKindInventory = "inventory"
	EventKindTask      = "task"
	EventKindContract  = "contract"
)

// BalanceChangedPayload notifies a balance mutation
type BalanceChangedPayload struct {
	CharacterID      int64 `json:"character_id"`
	MoneyBalance     int64 `json:"money_balance"`
	BankBalance      int64 `json:"bank_balance"`
	SecondaryBalance int64 `json:"secondary_balance"`
	Level            int   `json:"level"`
	LevelsGained     int   `json:"levels_gained,omitempty"`
}

// InventoryChangedPayload notifies an inventory/equipment mutation
type InventoryChangedPayload struct {
	CharacterID int64   `json:"character_id"`
	Item        ItemRef `json:"item"`
	Quantity    int     `json:"quantity"`
	Slot        *Slot   `json:"slot,omitempty"`
	Action      string  `json:"action"` // "grant", "consume", "equip", "unequip"
}

// TaskChangedPayload notifies task progress or a reward claim
type TaskChangedPayload struct {
	CharacterID int64  `json:"character_id"`
	TaskID      int    `json:"task_id"`
	Progress    int64  `json:"progress"`
	Completed   bool   `json:"completed"`
	Claimed     bool   `json:"claimed,omitempty"`
	Metric      Metric `json:"metric,omitempty"`
}

// ContractChangedPayload notifies a contract lifecycle transition
type ContractChangedPayload struct {
	ContractID  string         `json:"contract_id"`
	PosterID    int64          `json:"poster_id"`
	TargetID    int64          `json:"target_id"`
	Status      ContractStatus `json:"status"`
	Reward      int64          `json:"reward"`
	FulfilledBy *int64         `json:"fulfilled_by,omitempty"`
}
