package contract

import (
	"context"

	"github.com/undercity-game/undercity/internal/clock"
	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// SweepBatchSize caps how many due contracts one sweep examines
const SweepBatchSize = 100

// Sweeper expires overdue contracts and refunds their posters. Sweeps
// are idempotent: the guarded open -> expired transition means a
// contract already fulfilled or already swept is skipped silently.
type Sweeper struct {
	contracts repository.Contract
	uow       *economy.UnitOfWork
	publisher event.Bus
	clk       clock.Clock
}

// NewSweeper creates a new expiration sweeper
func NewSweeper(contracts repository.Contract, uow *economy.UnitOfWork, publisher event.Bus, clk clock.Clock) *Sweeper {
	return &Sweeper{contracts: contracts, uow: uow, publisher: publisher, clk: clk}
}

// SweepExpired processes one batch of due contracts. Returns how many
// contracts were transitioned to expired.
func (s *Sweeper) SweepExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	due, err := s.contracts.ListDueContracts(ctx, s.clk.Now(), SweepBatchSize)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	swept := 0
	for i := range due {
		contract := due[i]
		expired, err := s.expireOne(ctx, &contract)
		if err != nil {
			// One stuck poster must not starve the rest of the batch.
			log.Warn("Failed to expire contract",
				"contract_id", contract.ID,
				"poster_id", contract.PosterID,
				"error", err)
			continue
		}
		if expired {
			swept++
			contract.Status = domain.ContractExpired
			s.publish(ctx, event.NewContractEvent(event.ContractExpired, &contract))
		}
	}

	if swept > 0 {
		log.Info("Expired contracts swept", "due", len(due), "swept", swept)
	}
	return swept, nil
}

// expireOne refunds a single overdue contract inside the poster's unit
// of work. Returns false without error when the transition guard fails.
func (s *Sweeper) expireOne(ctx context.Context, contract *domain.Contract) (bool, error) {
	won := false
	err := s.uow.WithCharacterLock(ctx, contract.PosterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		var err error
		won, err = tx.TransitionContract(ctx, contract.ID, domain.ContractExpired, nil)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		return ledger.Credit(ch, domain.CurrencyCash, contract.Reward)
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (s *Sweeper) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}
