package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undercity-game/undercity/internal/domain"
)

const taskColumns = `task_id, metric, task_name, goal, reward_money, reward_exp, reward_points, active`

const progressColumns = `character_id, task_id, progress, is_completed, reward_collected, updated_at, completed_at`

// TaskRepository implements the task repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListTasks returns every task definition
func (r *TaskRepository) ListTasks(ctx context.Context) ([]domain.TaskDefinition, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM task_definitions ORDER BY task_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// GetTask returns one task definition
func (r *TaskRepository) GetTask(ctx context.Context, taskID int) (*domain.TaskDefinition, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM task_definitions WHERE task_id = $1`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// GetActiveTasksByMetric returns the active definitions tracking a metric
func (r *TaskRepository) GetActiveTasksByMetric(ctx context.Context, metric domain.Metric) ([]domain.TaskDefinition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM task_definitions WHERE metric = $1 AND active ORDER BY task_id`, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by metric: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// Progress upserts. Monotonicity, goal clamping and the one-way
// completion flip are enforced at the database so concurrent updates
// cannot regress state regardless of arrival order.
const applyProgressIncremental = `
INSERT INTO user_task_progress (character_id, task_id, progress, is_completed, completed_at)
VALUES ($1, $2, LEAST($3, $4), $3 >= $4, CASE WHEN $3 >= $4 THEN NOW() END)
ON CONFLICT (character_id, task_id) DO UPDATE SET
	progress = LEAST($4, user_task_progress.progress + $3),
	is_completed = user_task_progress.is_completed OR user_task_progress.progress + $3 >= $4,
	completed_at = COALESCE(user_task_progress.completed_at, CASE WHEN user_task_progress.progress + $3 >= $4 THEN NOW() END),
	updated_at = NOW()
RETURNING ` + progressColumns

const applyProgressAbsolute = `
INSERT INTO user_task_progress (character_id, task_id, progress, is_completed, completed_at)
VALUES ($1, $2, LEAST($3, $4), $3 >= $4, CASE WHEN $3 >= $4 THEN NOW() END)
ON CONFLICT (character_id, task_id) DO UPDATE SET
	progress = LEAST($4, GREATEST(user_task_progress.progress, $3)),
	is_completed = user_task_progress.is_completed OR GREATEST(user_task_progress.progress, $3) >= $4,
	completed_at = COALESCE(user_task_progress.completed_at, CASE WHEN GREATEST(user_task_progress.progress, $3) >= $4 THEN NOW() END),
	updated_at = NOW()
RETURNING ` + progressColumns

// ApplyProgress applies one progress update using the metric's mode
func (r *TaskRepository) ApplyProgress(ctx context.Context, characterID int64, task domain.TaskDefinition, value int64) (*domain.TaskProgress, error) {
	stmt := applyProgressIncremental
	if task.Metric.Mode() == domain.MetricModeAbsolute {
		stmt = applyProgressAbsolute
	}

	progress, err := scanProgress(r.db.QueryRow(ctx, stmt, characterID, task.ID, value, task.Goal))
	if err != nil {
		return nil, fmt.Errorf("failed to apply progress: %w", err)
	}
	return progress, nil
}

// ListProgress returns every progress row for a character
func (r *TaskRepository) ListProgress(ctx context.Context, characterID int64) ([]domain.TaskProgress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+progressColumns+` FROM user_task_progress WHERE character_id = $1 ORDER BY task_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var all []domain.TaskProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, *p)
	}
	return all, rows.Err()
}

// GetTaskProgress reads one progress row inside the transaction; nil when absent
func (t *CharacterTx) GetTaskProgress(ctx context.Context, characterID int64, taskID int) (*domain.TaskProgress, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+progressColumns+` FROM user_task_progress WHERE character_id = $1 AND task_id = $2`,
		characterID, taskID)
	p, err := scanProgress(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task progress: %w", err)
	}
	return p, nil
}

// CollectTaskReward flips reward_collected under its guard condition
func (t *CharacterTx) CollectTaskReward(ctx context.Context, characterID int64, taskID int) (bool, error) {
	const stmt = `
UPDATE user_task_progress
SET reward_collected = TRUE, updated_at = NOW()
WHERE character_id = $1 AND task_id = $2 AND is_completed AND NOT reward_collected`

	tag, err := t.tx.Exec(ctx, stmt, characterID, taskID)
	if err != nil {
		return false, fmt.Errorf("failed to collect task reward: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectTasks(rows pgx.Rows) ([]domain.TaskDefinition, error) {
	var tasks []domain.TaskDefinition
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*domain.TaskDefinition, error) {
	var task domain.TaskDefinition
	var metric string
	if err := row.Scan(&task.ID, &metric, &task.Name, &task.Goal,
		&task.Reward.Money, &task.Reward.Exp, &task.Reward.Points, &task.Active); err != nil {
		return nil, err
	}
	task.Metric = domain.Metric(metric)
	return &task, nil
}

func scanProgress(row pgx.Row) (*domain.TaskProgress, error) {
	var p domain.TaskProgress
	if err := row.Scan(&p.CharacterID, &p.TaskID, &p.Progress, &p.IsCompleted,
		&p.RewardCollected, &p.UpdatedAt, &p.CompletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
