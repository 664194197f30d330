package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/undercity-game/undercity/internal/config"
	"github.com/undercity-game/undercity/internal/event"
)

// InitializeEventSystem creates and configures the event bus and resilient
// publisher. It ensures the dead-letter directory exists before any retry
// loop can need it.
// Returns the event bus and the resilient publisher that wraps it.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	resilientConfig := event.DefaultResilientConfig(cfg.DeadLetterPath)

	if err := os.MkdirAll(filepath.Dir(resilientConfig.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher := event.NewResilientPublisher(eventBus, resilientConfig)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", resilientConfig.MaxRetries,
		"retry_delay", resilientConfig.RetryDelay,
		"deadletter_path", resilientConfig.DeadLetterPath)

	return eventBus, resilientPublisher, nil
}
