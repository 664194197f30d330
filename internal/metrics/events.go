package metrics

import (
	"context"
	"strconv"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BalanceChanged,
		event.InventoryChanged,
		event.TaskProgressed,
		event.TaskRewardClaimed,
		event.ContractPosted,
		event.ContractFulfilled,
		event.ContractExpired,
		event.CharacterLeveledUp,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.InventoryChanged:
		payload, ok := evt.Payload.(domain.InventoryChangedPayload)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		switch payload.Action {
		case economy.ActionGrant:
			ItemsBought.WithLabelValues(payload.Item.String()).Inc()
		case economy.ActionConsume:
			ItemsSold.WithLabelValues(payload.Item.String()).Inc()
		case economy.ActionEquip:
			ItemsEquipped.WithLabelValues(payload.Item.String()).Inc()
		}

	case event.TaskProgressed:
		payload, ok := evt.Payload.(domain.TaskChangedPayload)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		if payload.Completed {
			TasksCompleted.WithLabelValues(strconv.Itoa(payload.TaskID)).Inc()
		}

	case event.TaskRewardClaimed:
		payload, ok := evt.Payload.(domain.TaskChangedPayload)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		RewardsClaimed.WithLabelValues(strconv.Itoa(payload.TaskID)).Inc()

	case event.ContractPosted:
		ContractsPosted.Inc()

	case event.ContractFulfilled:
		ContractsFulfilled.Inc()

	case event.ContractExpired:
		ContractsExpired.Inc()

	case event.CharacterLeveledUp:
		LevelUps.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
