// Package memory provides an in-memory implementation of the repository
// interfaces. It backs the devtool's offline mode and the service-level
// tests; the locking behavior mirrors the row-lock semantics of the
// postgres implementation, including the bounded lock wait.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/repository"
)

// DefaultLockWait bounds how long a transaction waits for a character lock
const DefaultLockWait = 200 * time.Millisecond

// Repo is an in-memory character/task/contract store
type Repo struct {
	mu       sync.Mutex
	lockWait time.Duration

	characters map[int64]domain.Character
	entries    map[int64]map[domain.ItemRef]domain.InventoryEntry
	tasks      map[int]domain.TaskDefinition
	taskOrder  []int
	progress   map[int64]map[int]domain.TaskProgress
	contracts  map[uuid.UUID]domain.Contract

	charLocks map[int64]*sync.Mutex
}

// NewRepo creates an empty in-memory repository
func NewRepo() *Repo {
	return &Repo{
		lockWait:   DefaultLockWait,
		characters: make(map[int64]domain.Character),
		entries:    make(map[int64]map[domain.ItemRef]domain.InventoryEntry),
		tasks:      make(map[int]domain.TaskDefinition),
		progress:   make(map[int64]map[int]domain.TaskProgress),
		contracts:  make(map[uuid.UUID]domain.Contract),
		charLocks:  make(map[int64]*sync.Mutex),
	}
}

// SeedTask installs a task definition
func (r *Repo) SeedTask(task domain.TaskDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		r.taskOrder = append(r.taskOrder, task.ID)
	}
	r.tasks[task.ID] = task
}

func (r *Repo) lockFor(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.charLocks[id]
	if !ok {
		m = &sync.Mutex{}
		r.charLocks[id] = m
	}
	return m
}

// acquire takes the per-character lock with a bounded wait, matching the
// lock_timeout behavior of the postgres implementation.
func (r *Repo) acquire(id int64) bool {
	m := r.lockFor(id)
	deadline := time.Now().Add(r.lockWait)
	for {
		if m.TryLock() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// --- repository.Character ---

func (r *Repo) CreateCharacter(_ context.Context, ch *domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.characters[ch.ID]; exists {
		return fmt.Errorf("character %d already exists: %w", ch.ID, domain.ErrConflict)
	}
	now := time.Now()
	ch.CreatedAt = now
	ch.UpdatedAt = now
	r.characters[ch.ID] = *ch
	return nil
}

func (r *Repo) GetCharacter(_ context.Context, id int64) (*domain.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.characters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrCharacterNotFound, id)
	}
	return &ch, nil
}

func (r *Repo) ListInventory(_ context.Context, characterID int64) ([]domain.InventoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.InventoryEntry, 0, len(r.entries[characterID]))
	for _, entry := range r.entries[characterID] {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Item.Kind != out[j].Item.Kind {
			return out[i].Item.Kind < out[j].Item.Kind
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out, nil
}

func (r *Repo) BeginTx(context.Context) (repository.CharacterTx, error) {
	return &memTx{
		repo:        r,
		charWrites:  make(map[int64]domain.Character),
		entryWrites: make(map[entryKey]*domain.InventoryEntry),
	}, nil
}

// --- repository.Task ---

func (r *Repo) ListTasks(context.Context) ([]domain.TaskDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TaskDefinition, 0, len(r.taskOrder))
	for _, id := range r.taskOrder {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *Repo) GetTask(_ context.Context, taskID int) (*domain.TaskDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrTaskNotFound, taskID)
	}
	return &task, nil
}

func (r *Repo) GetActiveTasksByMetric(_ context.Context, metric domain.Metric) ([]domain.TaskDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TaskDefinition, 0)
	for _, id := range r.taskOrder {
		task := r.tasks[id]
		if task.Active && task.Metric == metric {
			out = append(out, task)
		}
	}
	return out, nil
}

// ApplyProgress applies one update atomically with the metric-mode,
// clamp and one-way completion rules the SQL upserts enforce.
func (r *Repo) ApplyProgress(_ context.Context, characterID int64, task domain.TaskDefinition, value int64) (*domain.TaskProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byTask, ok := r.progress[characterID]
	if !ok {
		byTask = make(map[int]domain.TaskProgress)
		r.progress[characterID] = byTask
	}

	now := time.Now()
	p, ok := byTask[task.ID]
	if !ok {
		p = domain.TaskProgress{CharacterID: characterID, TaskID: task.ID}
	}

	next := p.Progress
	switch task.Metric.Mode() {
	case domain.MetricModeAbsolute:
		if value > next {
			next = value
		}
	default:
		next += value
	}
	if next > task.Goal {
		next = task.Goal
	}
	if next > p.Progress {
		p.Progress = next
	}
	if !p.IsCompleted && p.Progress >= task.Goal {
		p.IsCompleted = true
		p.CompletedAt = &now
	}
	p.UpdatedAt = now
	byTask[task.ID] = p
	return &p, nil
}

func (r *Repo) ListProgress(_ context.Context, characterID int64) ([]domain.TaskProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TaskProgress, 0, len(r.progress[characterID]))
	for _, id := range r.taskOrder {
		if p, ok := r.progress[characterID][id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- repository.Contract ---

func (r *Repo) GetContract(_ context.Context, id uuid.UUID) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, id)
	}
	return &c, nil
}

func (r *Repo) ListOpenContracts(context.Context) ([]domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Contract, 0)
	for _, c := range r.contracts {
		if c.IsOpen() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) ListDueContracts(_ context.Context, now time.Time, limit int) ([]domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Contract, 0)
	for _, c := range r.contracts {
		if c.IsOpen() && !c.ExpiresAt.After(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
