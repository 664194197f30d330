package economy

import (
	"context"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/event"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/logger"
	"github.com/undercity-game/undercity/internal/repository"
)

// Deposit moves cash into the bank
func (s *service) Deposit(ctx context.Context, characterID int64, amount int64) (*BankResult, error) {
	return s.bankOp(ctx, characterID, amount, "deposit", ledger.Deposit)
}

// Withdraw moves bank funds back to cash
func (s *service) Withdraw(ctx context.Context, characterID int64, amount int64) (*BankResult, error) {
	return s.bankOp(ctx, characterID, amount, "withdraw", ledger.Withdraw)
}

func (s *service) bankOp(ctx context.Context, characterID int64, amount int64, name string, op func(*domain.Character, int64) error) (*BankResult, error) {
	var (
		result   BankResult
		snapshot domain.Character
	)
	err := s.uow.WithCharacterLock(ctx, characterID, func(_ context.Context, _ repository.CharacterTx, ch *domain.Character) error {
		if err := op(ch, amount); err != nil {
			return err
		}
		result = BankResult{MoneyBalance: ch.MoneyBalance, BankBalance: ch.BankBalance}
		snapshot = *ch
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(characterID)
	s.publish(ctx, event.NewBalanceChangedEvent(&snapshot, 0))
	s.recordProgress(characterID,
		progressUpdate{domain.MetricMoneyBalance, snapshot.MoneyBalance},
		progressUpdate{domain.MetricBankBalance, snapshot.BankBalance},
	)

	logger.FromContext(ctx).Info("Bank operation completed",
		"character_id", characterID,
		"operation", name,
		"amount", amount,
		"money_balance", result.MoneyBalance,
		"bank_balance", result.BankBalance)

	return &result, nil
}

// Transfer moves cash between two characters atomically. Both row locks
// are taken in ascending id order regardless of direction.
func (s *service) Transfer(ctx context.Context, fromID, toID int64, amount int64) error {
	var fromSnapshot, toSnapshot domain.Character
	err := s.uow.WithCharacterLocks(ctx, fromID, toID, func(_ context.Context, _ repository.CharacterTx, from, to *domain.Character) error {
		if err := ledger.Debit(from, domain.CurrencyCash, amount); err != nil {
			return err
		}
		if err := ledger.Credit(to, domain.CurrencyCash, amount); err != nil {
			return err
		}
		fromSnapshot = *from
		toSnapshot = *to
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(fromID)
	s.cache.Invalidate(toID)
	s.publish(ctx, event.NewBalanceChangedEvent(&fromSnapshot, 0))
	s.publish(ctx, event.NewBalanceChangedEvent(&toSnapshot, 0))
	s.recordProgress(fromID, progressUpdate{domain.MetricMoneyBalance, fromSnapshot.MoneyBalance})
	s.recordProgress(toID, progressUpdate{domain.MetricMoneyBalance, toSnapshot.MoneyBalance})

	logger.FromContext(ctx).Info("Transfer completed",
		"from", fromID,
		"to", toID,
		"amount", amount)

	return nil
}
