package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/domain"
)

// Character defines the interface for character persistence
type Character interface {
	CreateCharacter(ctx context.Context, ch *domain.Character) error
	GetCharacter(ctx context.Context, id int64) (*domain.Character, error)
	ListInventory(ctx context.Context, characterID int64) ([]domain.InventoryEntry, error)
	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx is the transactional handle every mutating economy
// operation runs through. The character row lock acquired by
// GetCharacterForUpdate serializes all operations on the same character;
// reads of inventory, progress and contracts owned by that character are
// safe without further locking once it is held.
type CharacterTx interface {
	Tx

	// GetCharacterForUpdate acquires the exclusive per-character row lock.
	// The lock wait is bounded; domain.ErrBusy is returned on timeout.
	GetCharacterForUpdate(ctx context.Context, id int64) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, ch *domain.Character) error

	GetInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) (*domain.InventoryEntry, error)
	UpsertInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error
	DeleteInventoryEntry(ctx context.Context, characterID int64, item domain.ItemRef) error

	GetTaskProgress(ctx context.Context, characterID int64, taskID int) (*domain.TaskProgress, error)
	// CollectTaskReward flips reward_collected guarded by it still being
	// false. Returns false when the guard fails (already collected).
	CollectTaskReward(ctx context.Context, characterID int64, taskID int) (bool, error)

	CreateContract(ctx context.Context, contract *domain.Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	// TransitionContract moves a contract out of open, guarded by the
	// status still being open at write time. Returns false when the guard
	// fails (a concurrent transition won the race).
	TransitionContract(ctx context.Context, id uuid.UUID, to domain.ContractStatus, fulfilledBy *int64) (bool, error)
}
