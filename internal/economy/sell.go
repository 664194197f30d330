package economy

import (
	"context"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/inventory"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// Sell consumes exactly one unit of the item and credits the per-kind
// sell fraction of the catalog price. An equipped last unit is unequipped
// first; selling never fails because the item happens to be worn.
func (s *service) Sell(ctx context.Context, characterID int64, ref domain.ItemRef) (*SellResult, error) {
	log := logger.FromContext(ctx)

	item, err := s.catalog.Get(ref)
	if err != nil {
		return nil, err
	}

	sellPrice := SellPrice(item)

	var (
		result    SellResult
		snapshot  domain.Character
		remaining int
		freedSlot *domain.Slot
	)
	err = s.uow.WithCharacterLock(ctx, characterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		entry, err := tx.GetInventoryEntry(ctx, characterID, ref)
		if err != nil {
			return err
		}
		if entry == nil {
			return wrapNotOwned(ref)
		}

		// Only the committed unit left: release the slot so the unit
		// becomes sellable.
		if entry.Equipped && entry.Quantity == 1 {
			slot := *entry.Slot
			if _, err := inventory.Unequip(ctx, tx, ch, slot); err != nil {
				return err
			}
			freedSlot = &slot
		}

		consumed, err := inventory.Consume(ctx, tx, characterID, ref, 1)
		if err != nil {
			return err
		}
		remaining = consumed.Quantity

		if sellPrice > 0 {
			if err := ledger.Credit(ch, item.Currency, sellPrice); err != nil {
				return err
			}
		}

		result = SellResult{
			Item:       ref,
			SellPrice:  sellPrice,
			Currency:   item.Currency,
			NewBalance: ch.Balance(item.Currency),
		}
		snapshot = *ch
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(characterID)
	s.publish(ctx, event.NewBalanceChangedEvent(&snapshot, 0))
	if freedSlot != nil {
		s.publish(ctx, event.NewInventoryChangedEvent(characterID, ref, remaining+1, freedSlot, ActionUnequip))
	}
	s.publish(ctx, event.NewInventoryChangedEvent(characterID, ref, remaining, nil, ActionConsume))
	s.recordProgress(characterID,
		progressUpdate{domain.MetricItemsSold, 1},
		progressUpdate{domain.MetricMoneyBalance, snapshot.MoneyBalance},
	)

	log.Info("Item sold",
		"character_id", characterID,
		"item", ref.String(),
		"sell_price", sellPrice,
		"new_balance", result.NewBalance)

	return &result, nil
}
