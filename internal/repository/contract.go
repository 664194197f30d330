package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/domain"
)

// Contract defines the read-side interface for contract persistence.
// All writes happen through CharacterTx so they share the poster's or
// fulfiller's unit of work.
type Contract interface {
	GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	ListOpenContracts(ctx context.Context) ([]domain.Contract, error)
	// ListDueContracts returns open contracts whose expiry has passed.
	// The returned rows are candidates only; the sweeper must still win
	// the conditional open->expired transition per contract.
	ListDueContracts(ctx context.Context, now time.Time, limit int) ([]domain.Contract, error)
}
