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

// Purchase debits price*quantity and grants the items in one atomic
// transaction. Free catalog entries skip the debit.
func (s *service) Purchase(ctx context.Context, characterID int64, ref domain.ItemRef, quantity int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.catalog.Get(ref)
	if err != nil {
		return nil, err
	}

	totalCost := item.Price * int64(quantity)

	var (
		result   PurchaseResult
		snapshot domain.Character
		newQty   int
	)
	err = s.uow.WithCharacterLock(ctx, characterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		if totalCost > 0 {
			if err := ledger.Debit(ch, item.Currency, totalCost); err != nil {
				return err
			}
		}

		entry, err := inventory.Grant(ctx, tx, characterID, ref, quantity)
		if err != nil {
			return err
		}
		newQty = entry.Quantity

		result = PurchaseResult{
			Item:             ref,
			Quantity:         quantity,
			TotalCost:        totalCost,
			Currency:         item.Currency,
			RemainingBalance: ch.Balance(item.Currency),
		}
		snapshot = *ch
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(characterID)
	s.publish(ctx, event.NewBalanceChangedEvent(&snapshot, 0))
	s.publish(ctx, event.NewInventoryChangedEvent(characterID, ref, newQty, nil, ActionGrant))
	s.recordProgress(characterID,
		progressUpdate{domain.MetricItemsBought, int64(quantity)},
		progressUpdate{domain.MetricMoneyBalance, snapshot.MoneyBalance},
	)

	log.Info("Purchase completed",
		"character_id", characterID,
		"item", ref.String(),
		"quantity", quantity,
		"total_cost", totalCost,
		"remaining_balance", result.RemainingBalance)

	return &result, nil
}
