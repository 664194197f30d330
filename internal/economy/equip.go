package economy

import (
	"context"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/inventory"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// EquipItem places an owned item into an equip slot
func (s *service) EquipItem(ctx context.Context, characterID int64, ref domain.ItemRef, slot domain.Slot) error {
	var replaced *domain.ItemRef
	err := s.uow.WithCharacterLock(ctx, characterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		previous, err := inventory.Equip(ctx, tx, ch, ref, slot)
		if err != nil {
			return err
		}
		replaced = previous
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(characterID)
	s.publish(ctx, event.NewInventoryChangedEvent(characterID, ref, 0, &slot, ActionEquip))

	log := logger.FromContext(ctx)
	if replaced != nil {
		log.Info("Item equipped", "character_id", characterID, "item", ref.String(), "slot", slot, "replaced", replaced.String())
	} else {
		log.Info("Item equipped", "character_id", characterID, "item", ref.String(), "slot", slot)
	}
	return nil
}

// UnequipItem clears an equip slot; clearing an empty slot is a no-op
func (s *service) UnequipItem(ctx context.Context, characterID int64, slot domain.Slot) error {
	var removed *domain.ItemRef
	err := s.uow.WithCharacterLock(ctx, characterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		item, err := inventory.Unequip(ctx, tx, ch, slot)
		if err != nil {
			return err
		}
		removed = item
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(characterID)
	if removed != nil {
		s.publish(ctx, event.NewInventoryChangedEvent(characterID, *removed, 0, &slot, ActionUnequip))
		logger.FromContext(ctx).Info("Item unequipped", "character_id", characterID, "item", removed.String(), "slot", slot)
	}
	return nil
}
