// Package inventory owns the multiset of items a character holds and the
// equip relationship between entries and the fixed equipment slots.
// Every operation here runs against a character transaction handle; the
// caller holds the per-character row lock.
package inventory

import (
	"context"
	"fmt"

	"github.com/undercity-game/undercity/internal/domain"
)

// EntryStore is the slice of the character transaction the inventory
// operations need.
type EntryStore interface {
	GetInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) (*domain.InventoryEntry, error)
	UpsertInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error
	DeleteInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) error
}

// Grant increases or creates an entry for qty units of an item
func Grant(ctx context.Context, store EntryStore, characterID int64, item domain.ItemRef, qty int) (*domain.InventoryEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: grant of %d", domain.ErrInvalidAmount, qty)
	}

	entry, err := store.GetInventoryEntry(ctx, characterID, item)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &domain.InventoryEntry{CharacterID: characterID, Item: item}
	}
	entry.Quantity += qty

	if err := store.UpsertInventoryEntry(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Consume decreases an entry by qty units, deleting it at zero. The unit
// committed to an equip slot cannot be consumed; unequip first.
func Consume(ctx context.Context, store EntryStore, characterID int64, item domain.ItemRef, qty int) (*domain.InventoryEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: consume of %d", domain.ErrInvalidAmount, qty)
	}

	entry, err := store.GetInventoryEntry(ctx, characterID, item)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotOwned, item)
	}

	available := entry.Quantity
	if entry.Equipped {
		available--
	}
	if available < qty {
		return nil, fmt.Errorf("%w: %s (have %d available, want %d)", domain.ErrItemNotOwned, item, available, qty)
	}

	entry.Quantity -= qty
	if entry.Quantity == 0 {
		if err := store.DeleteInventoryEntry(ctx, characterID, item); err != nil {
			return nil, err
		}
		entry.Quantity = 0
		return entry, nil
	}

	if err := store.UpsertInventoryEntry(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Equip places an item into a slot, replacing (and unequipping, never
// destroying) the previous occupant. Returns the replaced item, if any.
func Equip(ctx context.Context, store EntryStore, ch *domain.Character, item domain.ItemRef, slot domain.Slot) (*domain.ItemRef, error) {
	if !slot.IsValid() || !item.Kind.CanOccupy(slot) {
		return nil, fmt.Errorf("%w: %s cannot occupy %s", domain.ErrSlotInvalid, item.Kind, slot)
	}

	entry, err := store.GetInventoryEntry(ctx, ch.ID, item)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotOwned, item)
	}

	// Already in the requested slot: nothing to do.
	if entry.Equipped && entry.Slot != nil && *entry.Slot == slot {
		return nil, nil
	}

	// Moving between slots (weapon1 <-> weapon2): release the old slot ref.
	if entry.Equipped && entry.Slot != nil {
		if old := ch.SlotRef(*entry.Slot); old != nil {
			*old = nil
		}
	}

	// Unequip the current occupant; its quantity is untouched.
	previous := ch.Equipped(slot)
	if previous != nil {
		if _, err := Unequip(ctx, store, ch, slot); err != nil {
			return nil, err
		}
	}

	entry.Equipped = true
	entry.Slot = &slot
	if err := store.UpsertInventoryEntry(ctx, *entry); err != nil {
		return nil, err
	}

	ref := ch.SlotRef(slot)
	itemCopy := item
	*ref = &itemCopy
	return previous, nil
}

// Unequip clears a slot; no-op when already empty. Returns the removed
// item, if any.
func Unequip(ctx context.Context, store EntryStore, ch *domain.Character, slot domain.Slot) (*domain.ItemRef, error) {
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrSlotInvalid, slot)
	}

	equipped := ch.Equipped(slot)
	if equipped == nil {
		return nil, nil
	}

	entry, err := store.GetInventoryEntry(ctx, ch.ID, *equipped)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		entry.Equipped = false
		entry.Slot = nil
		if err := store.UpsertInventoryEntry(ctx, *entry); err != nil {
			return nil, err
		}
	}

	ref := ch.SlotRef(slot)
	removed := *ref
	*ref = nil
	return removed, nil
}
