package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undercity-game/undercity/internal/domain"
)

const contractColumns = `contract_id, poster_id, target_id, status, reward, fulfilled_by, expires_at, created_at`

// ContractRepository implements the contract read side for PostgreSQL
type ContractRepository struct {
	db *pgxpool.Pool
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{db: db}
}

// GetContract returns one contract
func (r *ContractRepository) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_id = $1`, id)
	return scanContract(row)
}

// ListOpenContracts returns all open contracts
func (r *ContractRepository) ListOpenContracts(ctx context.Context) ([]domain.Contract, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE status = 'open' ORDER BY expires_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list open contracts: %w", err)
	}
	defer rows.Close()
	return collectContracts(rows)
}

// ListDueContracts returns open contracts whose expiry has passed
func (r *ContractRepository) ListDueContracts(ctx context.Context, now time.Time, limit int) ([]domain.Contract, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE status = 'open' AND expires_at <= $1 ORDER BY expires_at LIMIT $2`,
		now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due contracts: %w", err)
	}
	defer rows.Close()
	return collectContracts(rows)
}

// CreateContract inserts a contract inside the poster's unit of work
func (t *CharacterTx) CreateContract(ctx context.Context, contract *domain.Contract) error {
	const stmt = `
INSERT INTO contracts (contract_id, poster_id, target_id, status, reward, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := t.tx.Exec(ctx, stmt,
		contract.ID, contract.PosterID, contract.TargetID, contract.Status,
		contract.Reward, contract.ExpiresAt, contract.CreatedAt); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// GetContract reads one contract inside the transaction
func (t *CharacterTx) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_id = $1`, id)
	return scanContract(row)
}

// TransitionContract moves a contract out of open, guarded by the status
// still being open at write time
func (t *CharacterTx) TransitionContract(ctx context.Context, id uuid.UUID, to domain.ContractStatus, fulfilledBy *int64) (bool, error) {
	const stmt = `
UPDATE contracts SET status = $2, fulfilled_by = $3
WHERE contract_id = $1 AND status = 'open'`

	tag, err := t.tx.Exec(ctx, stmt, id, to, fulfilledBy)
	if err != nil {
		return false, fmt.Errorf("failed to transition contract: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectContracts(rows pgx.Rows) ([]domain.Contract, error) {
	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	var status string
	if err := row.Scan(&c.ID, &c.PosterID, &c.TargetID, &status, &c.Reward,
		&c.FulfilledBy, &c.ExpiresAt, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrContractNotFound
		}
		return nil, err
	}
	c.Status = domain.ContractStatus(status)
	return &c, nil
}
