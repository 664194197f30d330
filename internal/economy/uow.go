package economy

import (
	"context"
	"fmt"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/repository"
)

// TxFunc runs inside a unit of work holding the character's row lock.
// Mutations to ch are written back and committed when the func returns
// nil; any error rolls the whole transaction back.
type TxFunc func(ctx context.Context, tx repository.CharacterTx, ch *domain.Character) error

// PairTxFunc runs inside a unit of work holding both characters' row locks
type PairTxFunc func(ctx context.Context, tx repository.CharacterTx, first, second *domain.Character) error

// UnitOfWork serializes all mutating operations on a character behind a
// transactional row lock.
type UnitOfWork struct {
	repo repository.Character
}

// NewUnitOfWork creates a UnitOfWork over the given repository
func NewUnitOfWork(repo repository.Character) *UnitOfWork {
	return &UnitOfWork{repo: repo}
}

// WithCharacterLock runs fn with the exclusive lock on one character
func (u *UnitOfWork) WithCharacterLock(ctx context.Context, characterID int64, fn TxFunc) error {
	tx, err := u.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ch, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx, ch); err != nil {
		return err
	}

	if err := tx.UpdateCharacter(ctx, ch); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}

// WithCharacterLocks runs fn with exclusive locks on two characters.
// Locks are always acquired in ascending id order so concurrent
// multi-character operations cannot deadlock; fn still receives the
// characters in the caller's order.
func (u *UnitOfWork) WithCharacterLocks(ctx context.Context, firstID, secondID int64, fn PairTxFunc) error {
	if firstID == secondID {
		return fmt.Errorf(ErrMsgSelfTransferFmt, firstID, domain.ErrInvalidInput)
	}

	tx, err := u.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	lowID, highID := firstID, secondID
	if lowID > highID {
		lowID, highID = highID, lowID
	}

	low, err := tx.GetCharacterForUpdate(ctx, lowID)
	if err != nil {
		return err
	}
	high, err := tx.GetCharacterForUpdate(ctx, highID)
	if err != nil {
		return err
	}

	first, second := low, high
	if firstID != lowID {
		first, second = high, low
	}

	if err := fn(ctx, tx, first, second); err != nil {
		return err
	}

	if err := tx.UpdateCharacter(ctx, first); err != nil {
		return err
	}
	if err := tx.UpdateCharacter(ctx, second); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}
