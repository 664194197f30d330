package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/undercity-game/undercity/internal/domain"
)

type entryKey struct {
	characterID int64
	item        domain.ItemRef
}

// memTx stages character and inventory writes until Commit, holding the
// per-character locks for the whole transaction. Conditional updates
// (reward collection, contract transitions) claim their row at call
// time so exactly one racer wins, the way the row-locked UPDATE
// statements behave in postgres, and record an undo entry so Rollback
// restores the prior row. A racer that loses the claim fails
// immediately instead of blocking on the row lock.
type memTx struct {
	repo   *Repo
	locked []int64
	closed bool

	charWrites  map[int64]domain.Character
	entryWrites map[entryKey]*domain.InventoryEntry // nil value marks a delete
	undo        []func()                            // reverts call-time claims, applied in reverse
}

func (t *memTx) Commit(context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.repo.mu.Lock()
	for id, ch := range t.charWrites {
		ch.UpdatedAt = time.Now()
		t.repo.characters[id] = ch
	}
	for key, entry := range t.entryWrites {
		byItem, ok := t.repo.entries[key.characterID]
		if !ok {
			byItem = make(map[domain.ItemRef]domain.InventoryEntry)
			t.repo.entries[key.characterID] = byItem
		}
		if entry == nil {
			delete(byItem, key.item)
		} else {
			byItem[key.item] = *entry
		}
	}
	t.undo = nil
	t.repo.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.repo.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.repo.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) release() {
	t.closed = true
	for _, id := range t.locked {
		t.repo.lockFor(id).Unlock()
	}
	t.locked = nil
}

func (t *memTx) GetCharacterForUpdate(_ context.Context, id int64) (*domain.Character, error) {
	if !t.repo.acquire(id) {
		return nil, fmt.Errorf("%w: character %d", domain.ErrBusy, id)
	}
	t.locked = append(t.locked, id)

	t.repo.mu.Lock()
	ch, ok := t.repo.characters[id]
	t.repo.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrCharacterNotFound, id)
	}
	return &ch, nil
}

func (t *memTx) UpdateCharacter(_ context.Context, ch *domain.Character) error {
	for _, currency := range []domain.Currency{domain.CurrencyCash, domain.CurrencyCredits} {
		if ch.Balance(currency) < 0 {
			return fmt.Errorf("%w: %s balance %d", domain.ErrInsufficientFunds, currency, ch.Balance(currency))
		}
	}
	if ch.BankBalance < 0 {
		return fmt.Errorf("%w: bank balance %d", domain.ErrInsufficientFunds, ch.BankBalance)
	}
	t.charWrites[ch.ID] = *ch
	return nil
}

func (t *memTx) GetInventoryEntry(_ context.Context, characterID int64, item domain.ItemRef) (*domain.InventoryEntry, error) {
	key := entryKey{characterID, item}
	if staged, ok := t.entryWrites[key]; ok {
		if staged == nil {
			return nil, nil
		}
		cp := *staged
		return &cp, nil
	}

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	entry, ok := t.repo.entries[characterID][item]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (t *memTx) UpsertInventoryEntry(_ context.Context, entry domain.InventoryEntry) error {
	cp := entry
	t.entryWrites[entryKey{entry.CharacterID, entry.Item}] = &cp
	return nil
}

func (t *memTx) DeleteInventoryEntry(_ context.Context, characterID int64, item domain.ItemRef) error {
	t.entryWrites[entryKey{characterID, item}] = nil
	return nil
}

func (t *memTx) GetTaskProgress(_ context.Context, characterID int64, taskID int) (*domain.TaskProgress, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	p, ok := t.repo.progress[characterID][taskID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// CollectTaskReward performs the conditional flip atomically at call
// time so exactly one claimant can win.
func (t *memTx) CollectTaskReward(_ context.Context, characterID int64, taskID int) (bool, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	p, ok := t.repo.progress[characterID][taskID]
	if !ok || !p.IsCompleted || p.RewardCollected {
		return false, nil
	}
	prev := p
	t.undo = append(t.undo, func() { t.repo.progress[characterID][taskID] = prev })
	p.RewardCollected = true
	p.UpdatedAt = time.Now()
	t.repo.progress[characterID][taskID] = p
	return true, nil
}

func (t *memTx) CreateContract(_ context.Context, contract *domain.Contract) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now()
	}
	id := contract.ID
	t.undo = append(t.undo, func() { delete(t.repo.contracts, id) })
	t.repo.contracts[id] = *contract
	return nil
}

func (t *memTx) GetContract(_ context.Context, id uuid.UUID) (*domain.Contract, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	c, ok := t.repo.contracts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, id)
	}
	return &c, nil
}

// TransitionContract applies the guarded open -> terminal move
// atomically at call time; the second racer sees the guard fail.
func (t *memTx) TransitionContract(_ context.Context, id uuid.UUID, to domain.ContractStatus, fulfilledBy *int64) (bool, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	c, ok := t.repo.contracts[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrContractNotFound, id)
	}
	if !c.IsOpen() {
		return false, nil
	}
	prev := c
	t.undo = append(t.undo, func() { t.repo.contracts[id] = prev })
	c.Status = to
	c.FulfilledBy = fulfilledBy
	t.repo.contracts[id] = c
	return true, nil
}
