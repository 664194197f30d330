package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undercity-game/undercity/internal/database/postgres"
	"github.com/undercity-game/undercity/internal/repository"
)

// Repositories holds all repository implementations used by the engine.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Character repository.Character
	Task      repository.Task
	Contract  repository.Contract
}

// InitializeRepositories creates all repository implementations.
// lockTimeout bounds how long a transaction waits on a character row
// before failing with a retryable error.
func InitializeRepositories(dbPool *pgxpool.Pool, lockTimeout time.Duration) *Repositories {
	return &Repositories{
		Character: postgres.NewCharacterRepository(dbPool, lockTimeout),
		Task:      postgres.NewTaskRepository(dbPool),
		Contract:  postgres.NewContractRepository(dbPool),
	}
}
