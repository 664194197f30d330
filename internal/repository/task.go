package repository

import (
	"context"

	"github.com/undercity-game/undercity/internal/domain"
)

// Task defines the interface for task definition and progress persistence
type Task interface {
	ListTasks(ctx context.Context) ([]domain.TaskDefinition, error)
	GetTask(ctx context.Context, taskID int) (*domain.TaskDefinition, error)
	GetActiveTasksByMetric(ctx context.Context, metric domain.Metric) ([]domain.TaskDefinition, error)

	// ApplyProgress applies one progress update for one task using the
	// metric's mode: absolute mode keeps max(current, value), incremental
	// mode adds value. Progress is clamped at the task goal and the
	// completion flag flips one-way at the database, so concurrent
	// updates cannot decrease progress or revert completion.
	ApplyProgress(ctx context.Context, characterID int64, task domain.TaskDefinition, value int64) (*domain.TaskProgress, error)

	ListProgress(ctx context.Context, characterID int64) ([]domain.TaskProgress, error)
}
