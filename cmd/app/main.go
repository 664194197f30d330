package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/undercity-game/undercity/internal/bootstrap"
	"github.com/undercity-game/undercity/internal/clock"
	"github.com/undercity-game/undercity/internal/config"
	"github.com/undercity-game/undercity/internal/contract"
	"github.com/undercity-game/undercity/internal/database"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/handler"
	"github.com/undercity-game/undercity/internal/scheduler"
	"github.com/undercity-game/undercity/internal/server"
	"github.com/undercity-game/undercity/internal/sse"
	"github.com/undercity-game/undercity/internal/task"
	"github.com/undercity-game/undercity/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second

	sweepJobName = "contract-sweep"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	dbPool, err := database.Connect(context.Background(), cfg.PoolConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool, cfg.LockTimeout)

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize event system: %v", err)
	}

	lookup, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(eventBus, hub); err != nil {
		log.Fatalf("Failed to register event handlers: %v", err)
	}

	// The task service consumes metric observations produced by the
	// economy service, so both share one unit of work over the same
	// character repository.
	uow := economy.NewUnitOfWork(repos.Character)
	taskService := task.NewService(repos.Task, uow, resilientPublisher)
	economyService := economy.NewService(repos.Character, lookup, resilientPublisher, taskService)

	clk := clock.NewSystem()
	contractService := contract.NewService(repos.Contract, uow, resilientPublisher, taskService, clk)
	sweeper := contract.NewSweeper(repos.Contract, uow, resilientPublisher, clk)

	// Background sweep of expired contracts
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(sweepJobName, cfg.SweepInterval, worker.JobFunc(func(ctx context.Context) error {
		_, err := sweeper.SweepExpired(ctx)
		return err
	}))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, economyService, taskService, contractService, lookup, hub)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Block until an interrupt arrives
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		EconomyService:     economyService,
		ContractService:    contractService,
		SSEHub:             hub,
		ResilientPublisher: resilientPublisher,
	})
}
