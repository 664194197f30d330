// Package task tracks per-character progress against task definitions
// and pays out rewards on claim. Progress writes are monotonic and
// clamped; reward collection is a one-shot guarded flip.
package task

import (
	"context"
	"fmt"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// ClaimResult contains the payout of a successful reward claim
type ClaimResult struct {
	TaskID       int                 `json:"task_id"`
	Reward       domain.RewardBundle `json:"reward"`
	LevelsGained int                 `json:"levels_gained"`
	NewLevel     int                 `json:"new_level"`
}

// Service defines the interface for task progress operations
type Service interface {
	ListTasks(ctx context.Context) ([]domain.TaskDefinition, error)
	GetProgress(ctx context.Context, characterID int64) ([]domain.TaskProgress, error)
	UpdateProgress(ctx context.Context, characterID int64, metric domain.Metric, value int64) error
	ClaimReward(ctx context.Context, characterID int64, taskID int) (*ClaimResult, error)
}

type service struct {
	repo      repository.Task
	uow       *economy.UnitOfWork
	publisher event.Bus
}

// NewService creates a new task service
func NewService(repo repository.Task, uow *economy.UnitOfWork, publisher event.Bus) Service {
	return &service{repo: repo, uow: uow, publisher: publisher}
}

func (s *service) ListTasks(ctx context.Context) ([]domain.TaskDefinition, error) {
	return s.repo.ListTasks(ctx)
}

func (s *service) GetProgress(ctx context.Context, characterID int64) ([]domain.TaskProgress, error) {
	return s.repo.ListProgress(ctx, characterID)
}

// UpdateProgress applies one metric observation to every active task
// tracking that metric. The write path enforces monotonicity, the goal
// clamp and the one-way completion flip, so callers can fire and forget.
func (s *service) UpdateProgress(ctx context.Context, characterID int64, metric domain.Metric, value int64) error {
	if !metric.IsValid() {
		return fmt.Errorf("unknown metric %q: %w", metric, domain.ErrInvalidInput)
	}
	if value < 0 {
		return fmt.Errorf("negative progress value %d: %w", value, domain.ErrInvalidAmount)
	}

	tasks, err := s.repo.GetActiveTasksByMetric(ctx, metric)
	if err != nil {
		return fmt.Errorf("failed to load tasks for metric %s: %w", metric, err)
	}

	log := logger.FromContext(ctx)
	for _, def := range tasks {
		progress, err := s.repo.ApplyProgress(ctx, characterID, def, value)
		if err != nil {
			return fmt.Errorf("failed to apply progress for task %d: %w", def.ID, err)
		}
		s.publish(ctx, event.NewTaskProgressedEvent(progress, metric))
		if progress.IsCompleted && !progress.RewardCollected {
			log.Info("Task completed",
				"character_id", characterID,
				"task_id", def.ID,
				"metric", metric)
		}
	}
	return nil
}

// ClaimReward pays out a completed task exactly once. The conditional
// collect and the reward credit share the character's unit of work, so a
// lost race costs nothing.
func (s *service) ClaimReward(ctx context.Context, characterID int64, taskID int) (*ClaimResult, error) {
	def, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var (
		result   ClaimResult
		snapshot domain.Character
	)
	err = s.uow.WithCharacterLock(ctx, characterID, func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error {
		progress, err := tx.GetTaskProgress(ctx, characterID, taskID)
		if err != nil {
			return err
		}
		if progress == nil || !progress.IsCompleted {
			return fmt.Errorf("task %d: %w", taskID, domain.ErrNotCompleted)
		}

		collected, err := tx.CollectTaskReward(ctx, characterID, taskID)
		if err != nil {
			return err
		}
		if !collected {
			return fmt.Errorf("task %d: %w", taskID, domain.ErrAlreadyClaimed)
		}

		levelsGained := 0
		if def.Reward.Money > 0 {
			if err := ledger.Credit(ch, domain.CurrencyCash, def.Reward.Money); err != nil {
				return err
			}
		}
		if def.Reward.Points > 0 {
			if err := ledger.Credit(ch, domain.CurrencyCredits, def.Reward.Points); err != nil {
				return err
			}
		}
		if def.Reward.Exp > 0 {
			levelsGained, err = ledger.CreditExperience(ch, def.Reward.Exp)
			if err != nil {
				return err
			}
		}

		result = ClaimResult{
			TaskID:       taskID,
			Reward:       def.Reward,
			LevelsGained: levelsGained,
			NewLevel:     ch.Level,
		}
		snapshot = *ch
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewTaskRewardClaimedEvent(characterID, taskID, def.Goal))
	s.publish(ctx, event.NewBalanceChangedEvent(&snapshot, result.LevelsGained))
	if result.LevelsGained > 0 {
		s.publish(ctx, event.New(event.CharacterLeveledUp, domain.BalanceChangedPayload{
			CharacterID:  characterID,
			Level:        snapshot.Level,
			LevelsGained: result.LevelsGained,
		}))
		// The level metric is itself trackable.
		if err := s.UpdateProgress(ctx, characterID, domain.MetricLevel, int64(snapshot.Level)); err != nil {
			logger.FromContext(ctx).Warn("Failed to record level progress", "character_id", characterID, "error", err)
		}
	}

	logger.FromContext(ctx).Info("Task reward claimed",
		"character_id", characterID,
		"task_id", taskID,
		"money", def.Reward.Money,
		"exp", def.Reward.Exp,
		"levels_gained", result.LevelsGained)

	return &result, nil
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "event_type", e.Type, "error", err)
	}
}
