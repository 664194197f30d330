// Package economy composes the ledger and inventory operations into
// atomic transactions behind the per-character row lock, and fans out
// events and progress updates after commit.
package economy

import (
	"context"
	"sync"
	"time"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// PurchaseResult contains the result of a purchase operation
type PurchaseResult struct {
	Item             domain.ItemRef  `json:"item"`
	Quantity         int             `json:"quantity"`
	TotalCost        int64           `json:"total_cost"`
	Currency         domain.Currency `json:"currency"`
	RemainingBalance int64           `json:"remaining_balance"`
}

// SellResult contains the result of a sell operation
type SellResult struct {
	Item       domain.ItemRef  `json:"item"`
	SellPrice  int64           `json:"sell_price"`
	Currency   domain.Currency `json:"currency"`
	NewBalance int64           `json:"new_balance"`
}

// BankResult contains the balances after a bank operation
type BankResult struct {
	MoneyBalance int64 `json:"money_balance"`
	BankBalance  int64 `json:"bank_balance"`
}

// CatalogLookup resolves item references against the loaded catalog
type CatalogLookup interface {
	Get(ref domain.ItemRef) (*domain.CatalogItem, error)
}

// ProgressSink receives metric updates produced by committed operations.
// Implementations must be safe for concurrent use; failures are logged,
// never surfaced to the player.
type ProgressSink interface {
	UpdateProgress(ctx context.Context, characterID int64, metric domain.Metric, value int64) error
}

// Service defines the interface for economy operations
type Service interface {
	Register(ctx context.Context, characterID int64) (*domain.Character, error)
	GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error)
	GetInventory(ctx context.Context, characterID int64) ([]domain.InventoryEntry, error)

	Purchase(ctx context.Context, characterID int64, ref domain.ItemRef, quantity int) (*PurchaseResult, error)
	Sell(ctx context.Context, characterID int64, ref domain.ItemRef) (*SellResult, error)
	EquipItem(ctx context.Context, characterID int64, ref domain.ItemRef, slot domain.Slot) error
	UnequipItem(ctx context.Context, characterID int64, slot domain.Slot) error

	Deposit(ctx context.Context, characterID int64, amount int64) (*BankResult, error)
	Withdraw(ctx context.Context, characterID int64, amount int64) (*BankResult, error)
	Transfer(ctx context.Context, fromID, toID int64, amount int64) error

	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Character
	uow       *UnitOfWork
	catalog   CatalogLookup
	publisher event.Bus
	progress  ProgressSink
	cache     *characterCache
	wg        sync.WaitGroup
}

// NewService creates a new economy service. publisher and progress may
// be nil in offline tooling.
func NewService(repo repository.Character, lookup CatalogLookup, publisher event.Bus, progress ProgressSink) Service {
	return &service{
		repo:      repo,
		uow:       NewUnitOfWork(repo),
		catalog:   lookup,
		publisher: publisher,
		progress:  progress,
		cache:     newCharacterCache(CharacterCacheSize, CharacterCacheTTLSeconds*time.Second),
	}
}

func (s *service) Register(ctx context.Context, characterID int64) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	ch := ledger.NewCharacter(characterID)
	if err := s.repo.CreateCharacter(ctx, ch); err != nil {
		return nil, err
	}

	log.Info("Character registered", "character_id", characterID, "starting_money", ch.MoneyBalance)
	return ch, nil
}

func (s *service) GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error) {
	if ch, ok := s.cache.Get(characterID); ok {
		return ch, nil
	}

	ch, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ch)
	return ch, nil
}

func (s *service) GetInventory(ctx context.Context, characterID int64) ([]domain.InventoryEntry, error) {
	if _, err := s.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.repo.ListInventory(ctx, characterID)
}

// Shutdown waits for in-flight async work (events, progress feeds)
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

// publish sends an event without blocking the caller's result path
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}

type progressUpdate struct {
	metric domain.Metric
	value  int64
}

// recordProgress feeds the tracker asynchronously after commit. The
// request context may already be cancelled, so the goroutine runs on a
// detached context; Shutdown waits for it.
func (s *service) recordProgress(characterID int64, updates ...progressUpdate) {
	if s.progress == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		for _, u := range updates {
			if err := s.progress.UpdateProgress(ctx, characterID, u.metric, u.value); err != nil {
				logger.Warn("Failed to record progress",
					"character_id", characterID,
					"metric", u.metric,
					"error", err)
			}
		}
	}()
}

// validateQuantity validates the transaction quantity
func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return wrapInvalidQuantity(quantity)
	}
	if quantity > domain.MaxTransactionQuantity {
		return wrapQuantityExceedsMax(quantity)
	}
	return nil
}
