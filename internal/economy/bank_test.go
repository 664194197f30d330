package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undercity-game/undercity/internal/domain"
)

func TestDepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	result, err := f.service.Deposit(ctx, 1, 600)
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.MoneyBalance)
	assert.Equal(t, int64(600), result.BankBalance)

	result, err = f.service.Withdraw(ctx, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(600), result.MoneyBalance)
	assert.Equal(t, int64(400), result.BankBalance)
}

func TestDepositMoreThanCash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 100)

	_, err := f.service.Deposit(ctx, 1, 500)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	ch, err := f.repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), ch.MoneyBalance)
	assert.Equal(t, int64(0), ch.BankBalance)
}

func TestWithdrawMoreThanBanked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)
	_, err := f.service.Deposit(ctx, 1, 300)
	require.NoError(t, err)

	_, err = f.service.Withdraw(ctx, 1, 400)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	ch, err := f.repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(700), ch.MoneyBalance, "both sides unchanged on failure")
	assert.Equal(t, int64(300), ch.BankBalance)
}

func TestBankRejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	_, err := f.service.Deposit(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.service.Withdraw(ctx, 1, -10)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)
	f.seedCharacter(t, 2, 50)

	require.NoError(t, f.service.Transfer(ctx, 1, 2, 250))

	assert.Equal(t, int64(750), f.balance(t, 1))
	assert.Equal(t, int64(300), f.balance(t, 2))
}

func TestTransferInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 100)
	f.seedCharacter(t, 2, 50)

	err := f.service.Transfer(ctx, 1, 2, 250)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, int64(100), f.balance(t, 1), "failed transfer changes neither side")
	assert.Equal(t, int64(50), f.balance(t, 2))
}

func TestTransferToSelf(t *testing.T) {
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	err := f.service.Transfer(context.Background(), 1, 1, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferDescendingIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 0)
	f.seedCharacter(t, 2, 500)

	require.NoError(t, f.service.Transfer(ctx, 2, 1, 500))
	assert.Equal(t, int64(500), f.balance(t, 1))
	assert.Equal(t, int64(0), f.balance(t, 2))
}
