// Package contract manages time-bounded bounties. A contract escrows its
// reward from the poster when created; fulfillment pays the fulfiller and
// expiry refunds the poster. open is the only non-terminal status and the
// transition out of it is guarded, so each contract pays out exactly once.
package contract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/clock"
	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// TTL bounds for newly posted contracts
const (
	MinTTL = time.Minute
	MaxTTL = 7 * 24 * time.Hour
)

// Service defines the interface for contract operations
type Service interface {
	Post(ctx context.Context, posterID, targetID int64, reward int64, ttl time.Duration) (*domain.Contract, error)
	Fulfill(ctx context.Context, contractID uuid.UUID, fulfillerID int64) (*domain.Contract, error)
	Get(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error)
	ListOpen(ctx context.Context) ([]domain.Contract, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	contracts repository.Contract
	uow       *economy.UnitOfWork
	publisher event.Bus
	progress  economy.ProgressSink
	clk       clock.Clock
	wg        sync.WaitGroup
}

// NewService creates a new contract service
func NewService(contracts repository.Contract, uow *economy.UnitOfWork, publisher event.Bus, progress economy.ProgressSink, clk clock.Clock) Service {
	return &service{
		contracts: contracts,
		uow:       uow,
		publisher: publisher,
		progress:  progress,
		clk:       clk,
	}
}

// Post creates an open contract, escrowing the reward from the poster
func (s *service) Post(ctx context.Context, posterID, targetID int64, reward int64, ttl time.Duration) (*domain.Contract, error) {
	if reward <= 0 {
		return nil, fmt.Errorf("%w: contract reward %d", domain.ErrInvalidAmount, reward)
	}
	if ttl < MinTTL || ttl > MaxTTL {
		return nil, fmt.Errorf("contract ttl %s out of range: %w", ttl, domain.ErrInvalidInput)
	}
	if posterID == targetID {
		return nil, fmt.Errorf("contract on self: %w", domain.ErrInvalidInput)
	}

	now := s.clk.Now()
	contract := &domain.Contract{
		ID:        uuid.New(),
		PosterID:  posterID,
		TargetID:  targetID,
		Status:    domain.ContractOpen,
		Reward:    reward,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	err := s.uow.WithCharacterLock(ctx, posterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		if err := ledger.Debit(ch, domain.CurrencyCash, reward); err != nil {
			return err
		}
		return tx.CreateContract(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewContractEvent(event.ContractPosted, contract))

	logger.FromContext(ctx).Info("Contract posted",
		"contract_id", contract.ID,
		"poster_id", posterID,
		"target_id", targetID,
		"reward", reward,
		"expires_at", contract.ExpiresAt)

	return contract, nil
}

// Fulfill pays the escrowed reward to the fulfiller. Losing the status
// race (already fulfilled or expired) returns ErrConflict.
func (s *service) Fulfill(ctx context.Context, contractID uuid.UUID, fulfillerID int64) (*domain.Contract, error) {
	existing, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if existing.PosterID == fulfillerID {
		return nil, fmt.Errorf("poster cannot fulfill own contract: %w", domain.ErrInvalidInput)
	}

	var fulfilled *domain.Contract
	err = s.uow.WithCharacterLock(ctx, fulfillerID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		won, err := tx.TransitionContract(ctx, contractID, domain.ContractFulfilled, &fulfillerID)
		if err != nil {
			return err
		}
		if !won {
			return fmt.Errorf("contract %s already closed: %w", contractID, domain.ErrConflict)
		}

		if err := ledger.Credit(ch, domain.CurrencyCash, existing.Reward); err != nil {
			return err
		}

		c := *existing
		c.Status = domain.ContractFulfilled
		c.FulfilledBy = &fulfillerID
		fulfilled = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewContractEvent(event.ContractFulfilled, fulfilled))
	s.recordFulfillment(fulfillerID)

	logger.FromContext(ctx).Info("Contract fulfilled",
		"contract_id", contractID,
		"fulfiller_id", fulfillerID,
		"reward", existing.Reward)

	return fulfilled, nil
}

func (s *service) Get(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	return s.contracts.GetContract(ctx, contractID)
}

func (s *service) ListOpen(ctx context.Context) ([]domain.Contract, error) {
	return s.contracts.ListOpenContracts(ctx)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}

// Shutdown waits for in-flight progress feeds
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// recordFulfillment feeds the tracker asynchronously after commit. The
// request context may already be cancelled, so the goroutine runs on a
// detached context; Shutdown waits for it.
func (s *service) recordFulfillment(characterID int64) {
	if s.progress == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.progress.UpdateProgress(context.Background(), characterID, domain.MetricContractsFulfilled, 1); err != nil {
			logger.Warn("Failed to record contract fulfillment", "character_id", characterID, "error", err)
		}
	}()
}
