package domain

import "fmt"

// ItemKind is the tagged-union discriminator for catalog items.
// Each kind was historically a separate backing table; the engine only
// ever dispatches on the (kind, id) pair.
type ItemKind string

const (
	ItemKindWeapon  ItemKind = "weapon"
	ItemKindArmor   ItemKind = "armor"
	ItemKindHouse   ItemKind = "house"
	ItemKindSpecial ItemKind = "special"
	ItemKindVehicle ItemKind = "vehicle"
	ItemKindPet     ItemKind = "pet"
)

// IsValid reports whether k names a known item kind
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindWeapon, ItemKindArmor, ItemKindHouse, ItemKindSpecial, ItemKindVehicle, ItemKindPet:
		return true
	}
	return false
}

// SlotsFor returns the equip slots an item of this kind may occupy.
// Kinds that cannot be equipped return nil.
func (k ItemKind) SlotsFor() []Slot {
	switch k {
	case ItemKindWeapon:
		return []Slot{SlotWeapon1, SlotWeapon2}
	case ItemKindArmor:
		return []Slot{SlotArmor}
	case ItemKindHouse:
		return []Slot{SlotHouse}
	}
	return nil
}

// CanOccupy reports whether an item of this kind may be equipped into slot
func (k ItemKind) CanOccupy(slot Slot) bool {
	for _, s := range k.SlotsFor() {
		if s == slot {
			return true
		}
	}
	return false
}

// ItemRef identifies a catalog item as a (kind, id) pair
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   int      `json:"id"`
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// StatBonuses are the stat modifiers a catalog item grants while equipped
type StatBonuses struct {
	Attack  int `json:"attack,omitempty"`
	Defense int `json:"defense,omitempty"`
	Energy  int `json:"energy,omitempty"`
}

// CatalogItem is static reference data describing a purchasable item.
// Immutable within a transaction.
type CatalogItem struct {
	Ref      ItemRef     `json:"ref"`
	Name     string      `json:"name"`
	Price    int64       `json:"price"`
	Currency Currency    `json:"currency"`
	Rarity   string      `json:"rarity,omitempty"`
	Bonuses  StatBonuses `json:"bonuses,omitempty"`
}
