package bootstrap

import (
	"context"
	"log/slog"

	"github.com/undercity-game/undercity/internal/contract"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/scheduler"
	"github.com/undercity-game/undercity/internal/server"
	"github.com/undercity-game/undercity/internal/sse"
	"github.com/undercity-game/undercity/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	EconomyService     economy.Service
	ContractService    contract.Service
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application
// components in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler and worker pool (finish queued background jobs)
//  3. Economy and contract services (drain async progress feeds)
//  4. SSE hub (disconnect clients)
//  5. Event publisher (flush pending retries)
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	shutdownService(ctx, ServiceNameEconomy, components.EconomyService)
	shutdownService(ctx, ServiceNameContract, components.ContractService)

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
