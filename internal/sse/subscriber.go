package sse

import (
	"context"
	"log/slog"

	"github.com/undercity-game/undercity/internal/event"
)

// relayedTypes lists the bus events forwarded to SSE clients
var relayedTypes = []event.Type{
	event.BalanceChanged,
	event.InventoryChanged,
	event.TaskProgressed,
	event.TaskRewardClaimed,
	event.ContractPosted,
	event.ContractFulfilled,
	event.ContractExpired,
	event.CharacterLeveledUp,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers a relay handler for every engine event type.
// Payloads are typed structs and forwarded as-is.
func (s *Subscriber) Subscribe() {
	for _, t := range relayedTypes {
		eventType := t
		s.bus.Subscribe(eventType, func(_ context.Context, evt event.Event) error {
			s.hub.Broadcast(string(eventType), evt.Payload)
			slog.Debug("Relaying event to stream clients", "event_type", eventType)
			return nil
		})
	}

	slog.Info("SSE subscriber registered", "types", len(relayedTypes))
}
