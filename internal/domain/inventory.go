package domain

// InventoryEntry represents ownership of Quantity units of one catalog
// item for one character. An equipped entry commits exactly one unit to
// the named slot; the remaining quantity behaves as an unequipped stack.
// Entries reaching quantity zero are deleted, never stored.
type InventoryEntry struct {
	CharacterID int64   `json:"character_id"`
	Item        ItemRef `json:"item"`
	Quantity    int     `json:"quantity"`
	Equipped    bool    `json:"equipped"`
	Slot        *Slot   `json:"slot,omitempty"`
}
