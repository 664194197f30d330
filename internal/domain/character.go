package domain

import "time"

// Currency identifies one of the character's spendable balances
type Currency string

const (
	// CurrencyCash is the primary currency earned from crimes, jobs and sales
	CurrencyCash Currency = "cash"
	// CurrencyCredits is the secondary (premium/points) currency
	CurrencyCredits Currency = "credits"
)

// Slot is one of the fixed equipment attachment points on a character
type Slot string

const (
	SlotWeapon1 Slot = "weapon1"
	SlotWeapon2 Slot = "weapon2"
	SlotArmor   Slot = "armor"
	SlotHouse   Slot = "house"
)

// AllSlots lists every equip slot in a stable order
var AllSlots = []Slot{SlotWeapon1, SlotWeapon2, SlotArmor, SlotHouse}

// IsValid reports whether s names a known equip slot
func (s Slot) IsValid() bool {
	switch s {
	case SlotWeapon1, SlotWeapon2, SlotArmor, SlotHouse:
		return true
	}
	return false
}

// Character represents a player character and its scalar balances.
// The id is 1:1 with the owning account id.
type Character struct {
	ID               int64     `json:"id"`
	Level            int       `json:"level"`
	Exp              int64     `json:"exp"`
	MoneyBalance     int64     `json:"money_balance"`
	BankBalance      int64     `json:"bank_balance"`
	SecondaryBalance int64     `json:"secondary_balance"`
	EquippedWeapon1  *ItemRef  `json:"equipped_weapon1,omitempty"`
	EquippedWeapon2  *ItemRef  `json:"equipped_weapon2,omitempty"`
	EquippedArmor    *ItemRef  `json:"equipped_armor,omitempty"`
	EquippedHouse    *ItemRef  `json:"equipped_house,omitempty"`
	MaxHP            int       `json:"max_hp"`
	HP               int       `json:"hp"`
	MaxEnergy        int       `json:"max_energy"`
	Energy           int       `json:"energy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Balance returns the current amount for the given currency
func (c *Character) Balance(currency Currency) int64 {
	if currency == CurrencyCredits {
		return c.SecondaryBalance
	}
	return c.MoneyBalance
}

// SetBalance overwrites the amount for the given currency
func (c *Character) SetBalance(currency Currency, amount int64) {
	if currency == CurrencyCredits {
		c.SecondaryBalance = amount
		return
	}
	c.MoneyBalance = amount
}

// SlotRef returns a pointer to the equipped-item reference backing the slot.
// Returns nil for unknown slots.
func (c *Character) SlotRef(slot Slot) **ItemRef {
	switch slot {
	case SlotWeapon1:
		return &c.EquippedWeapon1
	case SlotWeapon2:
		return &c.EquippedWeapon2
	case SlotArmor:
		return &c.EquippedArmor
	case SlotHouse:
		return &c.EquippedHouse
	}
	return nil
}

// Equipped returns the item currently occupying the slot, or nil
func (c *Character) Equipped(slot Slot) *ItemRef {
	ref := c.SlotRef(slot)
	if ref == nil {
		return nil
	}
	return *ref
}
