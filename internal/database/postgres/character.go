package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/repository"
)

const characterColumns = `character_id, level, exp, money_balance, bank_balance, secondary_balance,
	equipped_weapon1_kind, equipped_weapon1_id, equipped_weapon2_kind, equipped_weapon2_id,
	equipped_armor_kind, equipped_armor_id, equipped_house_kind, equipped_house_id,
	max_hp, hp, max_energy, energy, created_at, updated_at`

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

// NewCharacterRepository creates a new CharacterRepository.
// lockTimeout bounds FOR UPDATE waits inside transactions started here.
func NewCharacterRepository(db *pgxpool.Pool, lockTimeout time.Duration) *CharacterRepository {
	return &CharacterRepository{db: db, lockTimeout: lockTimeout}
}

// CharacterTx implements repository.CharacterTx
type CharacterTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction with a bounded lock wait
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// SET does not accept bind parameters; the value is a trusted config duration.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return &CharacterTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *CharacterTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *CharacterTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// CreateCharacter inserts a new character row with starting values
func (r *CharacterRepository) CreateCharacter(ctx context.Context, ch *domain.Character) error {
	const stmt = `
INSERT INTO characters (character_id, level, exp, money_balance, bank_balance, secondary_balance, max_hp, hp, max_energy, energy)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, stmt,
		ch.ID, ch.Level, ch.Exp, ch.MoneyBalance, ch.BankBalance, ch.SecondaryBalance,
		ch.MaxHP, ch.HP, ch.MaxEnergy, ch.Energy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: character %d already exists", domain.ErrInvalidInput, ch.ID)
		}
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// GetCharacter retrieves a character without locking (read-only paths)
func (r *CharacterRepository) GetCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1`
	return scanCharacter(r.db.QueryRow(ctx, query, id))
}

// GetCharacterForUpdate loads the character row under an exclusive lock
func (t *CharacterTx) GetCharacterForUpdate(ctx context.Context, id int64) (*domain.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 FOR UPDATE`
	ch, err := scanCharacter(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		if isLockTimeout(err) {
			return nil, fmt.Errorf("%w: character %d", domain.ErrBusy, id)
		}
		return nil, err
	}
	return ch, nil
}

// UpdateCharacter writes back every mutable character column
func (t *CharacterTx) UpdateCharacter(ctx context.Context, ch *domain.Character) error {
	const stmt = `
UPDATE characters SET
	level = $2, exp = $3, money_balance = $4, bank_balance = $5, secondary_balance = $6,
	equipped_weapon1_kind = $7, equipped_weapon1_id = $8,
	equipped_weapon2_kind = $9, equipped_weapon2_id = $10,
	equipped_armor_kind = $11, equipped_armor_id = $12,
	equipped_house_kind = $13, equipped_house_id = $14,
	max_hp = $15, hp = $16, max_energy = $17, energy = $18,
	updated_at = NOW()
WHERE character_id = $1`

	w1k, w1i := refColumns(ch.EquippedWeapon1)
	w2k, w2i := refColumns(ch.EquippedWeapon2)
	ak, ai := refColumns(ch.EquippedArmor)
	hk, hi := refColumns(ch.EquippedHouse)

	tag, err := t.tx.Exec(ctx, stmt,
		ch.ID, ch.Level, ch.Exp, ch.MoneyBalance, ch.BankBalance, ch.SecondaryBalance,
		w1k, w1i, w2k, w2i, ak, ai, hk, hi,
		ch.MaxHP, ch.HP, ch.MaxEnergy, ch.Energy)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: balance went negative for character %d", domain.ErrInsufficientFunds, ch.ID)
		}
		return fmt.Errorf("failed to update character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrCharacterNotFound, ch.ID)
	}
	return nil
}

// scanCharacter maps one characters row into the domain type
func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var ch domain.Character
	var w1k, w2k, ak, hk *string
	var w1i, w2i, ai, hi *int

	err := row.Scan(
		&ch.ID, &ch.Level, &ch.Exp, &ch.MoneyBalance, &ch.BankBalance, &ch.SecondaryBalance,
		&w1k, &w1i, &w2k, &w2i, &ak, &ai, &hk, &hi,
		&ch.MaxHP, &ch.HP, &ch.MaxEnergy, &ch.Energy, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}

	ch.EquippedWeapon1 = refFromColumns(w1k, w1i)
	ch.EquippedWeapon2 = refFromColumns(w2k, w2i)
	ch.EquippedArmor = refFromColumns(ak, ai)
	ch.EquippedHouse = refFromColumns(hk, hi)
	return &ch, nil
}

func refColumns(ref *domain.ItemRef) (*string, *int) {
	if ref == nil {
		return nil, nil
	}
	kind := string(ref.Kind)
	id := ref.ID
	return &kind, &id
}

func refFromColumns(kind *string, id *int) *domain.ItemRef {
	if kind == nil || id == nil {
		return nil
	}
	return &domain.ItemRef{Kind: domain.ItemKind(*kind), ID: *id}
}
