// Package event provides the in-process notification bus. Events are
// emitted after a successful commit; handlers must tolerate at-least-once
// delivery and never feed back into the transactional path.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/undercity-game/undercity/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types emitted by the engine
const (
	BalanceChanged     Type = "balance.changed"
	InventoryChanged   Type = "inventory.changed"
	TaskProgressed     Type = "task.progressed"
	TaskRewardClaimed  Type = "task.reward_claimed"
	ContractPosted     Type = "contract.posted"
	ContractFulfilled  Type = "contract.fulfilled"
	ContractExpired    Type = "contract.expired"
	CharacterLeveledUp Type = "character.leveled_up"
)

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// New wraps a payload in a versioned, timestamped envelope
func New(eventType Type, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// NewBalanceChangedEvent creates a balance notification from a committed character state
func NewBalanceChangedEvent(ch *domain.Character, levelsGained int) Event {
	return New(BalanceChanged, domain.BalanceChangedPayload{
		CharacterID:      ch.ID,
		MoneyBalance:     ch.MoneyBalance,
		BankBalance:      ch.BankBalance,
		SecondaryBalance: ch.SecondaryBalance,
		Level:            ch.Level,
		LevelsGained:     levelsGained,
	})
}

// NewInventoryChangedEvent creates an inventory notification
func NewInventoryChangedEvent(characterID int64, item domain.ItemRef, quantity int, slot *domain.Slot, action string) Event {
	return New(InventoryChanged, domain.InventoryChangedPayload{
		CharacterID: characterID,
		Item:        item,
		Quantity:    quantity,
		Slot:        slot,
		Action:      action,
	})
}

// NewTaskProgressedEvent creates a task progress notification
func NewTaskProgressedEvent(progress *domain.TaskProgress, metric domain.Metric) Event {
	return New(TaskProgressed, domain.TaskChangedPayload{
		CharacterID: progress.CharacterID,
		TaskID:      progress.TaskID,
		Progress:    progress.Progress,
		Completed:   progress.IsCompleted,
		Metric:      metric,
	})
}

// NewTaskRewardClaimedEvent creates a reward claim notification
func NewTaskRewardClaimedEvent(characterID int64, taskID int, progress int64) Event {
	return New(TaskRewardClaimed, domain.TaskChangedPayload{
		CharacterID: characterID,
		TaskID:      taskID,
		Progress:    progress,
		Completed:   true,
		Claimed:     true,
	})
}

// NewContractEvent creates a contract lifecycle notification
func NewContractEvent(eventType Type, contract *domain.Contract) Event {
	return New(eventType, domain.ContractChangedPayload{
		ContractID:  contract.ID.String(),
		PosterID:    contract.PosterID,
		TargetID:    contract.TargetID,
		Status:      contract.Status,
		Reward:      contract.Reward,
		FulfilledBy: contract.FulfilledBy,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
