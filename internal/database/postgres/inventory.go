package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/undercity-game/undercity/internal/domain"
)

// ListInventory returns every inventory entry owned by a character
func (r *CharacterRepository) ListInventory(ctx context.Context, characterID int64) ([]domain.InventoryEntry, error) {
	const query = `
SELECT character_id, item_kind, item_id, quantity, equipped, slot
FROM inventory_entries
WHERE character_id = $1
ORDER BY item_kind, item_id`

	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		entry, err := scanInventoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetInventoryEntry returns one entry or nil when the item is not owned
func (t *CharacterTx) GetInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) (*domain.InventoryEntry, error) {
	const query = `
SELECT character_id, item_kind, item_id, quantity, equipped, slot
FROM inventory_entries
WHERE character_id = $1 AND item_kind = $2 AND item_id = $3`

	entry, err := scanInventoryEntry(t.tx.QueryRow(ctx, query, characterID, item.Kind, item.ID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory entry: %w", err)
	}
	return entry, nil
}

// UpsertInventoryEntry writes an entry's quantity and equip state
func (t *CharacterTx) UpsertInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error {
	const stmt = `
INSERT INTO inventory_entries (character_id, item_kind, item_id, quantity, equipped, slot)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (character_id, item_kind, item_id)
DO UPDATE SET quantity = $4, equipped = $5, slot = $6`

	var slot *string
	if entry.Slot != nil {
		s := string(*entry.Slot)
		slot = &s
	}

	if _, err := t.tx.Exec(ctx, stmt,
		entry.CharacterID, entry.Item.Kind, entry.Item.ID, entry.Quantity, entry.Equipped, slot); err != nil {
		return fmt.Errorf("failed to upsert inventory entry: %w", err)
	}
	return nil
}

// DeleteInventoryEntry removes an entry (quantity reached zero)
func (t *CharacterTx) DeleteInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) error {
	const stmt = `DELETE FROM inventory_entries WHERE character_id = $1 AND item_kind = $2 AND item_id = $3`

	if _, err := t.tx.Exec(ctx, stmt, characterID, item.Kind, item.ID); err != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", err)
	}
	return nil
}

func scanInventoryEntry(row pgx.Row) (*domain.InventoryEntry, error) {
	var entry domain.InventoryEntry
	var kind string
	var slot *string

	if err := row.Scan(&entry.CharacterID, &kind, &entry.Item.ID, &entry.Quantity, &entry.Equipped, &slot); err != nil {
		return nil, err
	}
	entry.Item.Kind = domain.ItemKind(kind)
	if slot != nil {
		s := domain.Slot(*slot)
		entry.Slot = &s
	}
	return &entry, nil
}
