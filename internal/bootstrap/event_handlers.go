package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/metrics"
	"github.com/undercity-game/undercity/internal/sse"
)

// RegisterEventHandlers sets up all event subscribers:
// the metrics collector and the SSE relay that forwards engine events
// to connected clients.
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	subscriber := sse.NewSubscriber(hub, bus)
	subscriber.Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	return nil
}
