package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undercity-game/undercity/internal/domain"
)

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	result, err := f.service.Purchase(ctx, 1, testPistol, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(800), result.TotalCost)
	assert.Equal(t, int64(200), result.RemainingBalance)
	assert.Equal(t, int64(200), f.balance(t, 1))

	entries, err := f.service.GetInventory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testPistol, entries[0].Item)
	assert.Equal(t, 1, entries[0].Quantity)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 500)

	_, err := f.service.Purchase(ctx, 1, testPistol, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, int64(500), f.balance(t, 1), "failed purchase must not touch the balance")
	entries, err := f.service.GetInventory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed purchase must not grant items")
}

func TestPurchaseQuantityValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	_, err := f.service.Purchase(ctx, 1, testPistol, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.Purchase(ctx, 1, testPistol, domain.MaxTransactionQuantity+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseUnknownItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	_, err := f.service.Purchase(ctx, 1, domain.ItemRef{Kind: domain.ItemKindWeapon, ID: 99}, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestPurchaseUnknownCharacter(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Purchase(context.Background(), 42, testPistol, 1)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestPurchaseFreeItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 100)

	result, err := f.service.Purchase(ctx, 1, testSquat, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalCost)
	assert.Equal(t, int64(100), f.balance(t, 1))
}

func TestPurchaseSecondaryCurrency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	err := f.repo.CreateCharacter(ctx, &domain.Character{ID: 1, Level: 1, MoneyBalance: 10, SecondaryBalance: 100})
	require.NoError(t, err)

	lockpicks := domain.ItemRef{Kind: domain.ItemKindSpecial, ID: 1}
	result, err := f.service.Purchase(ctx, 1, lockpicks, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyCredits, result.Currency)
	assert.Equal(t, int64(20), result.RemainingBalance)

	ch, err := f.repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), ch.MoneyBalance, "cash untouched by credits purchase")
	assert.Equal(t, int64(20), ch.SecondaryBalance)
}

func TestSell(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)
	_, err := f.service.Purchase(ctx, 1, testPistol, 2)
	require.NoError(t, err)

	result, err := f.service.Sell(ctx, 1, testPistol)
	require.NoError(t, err)

	// Weapons sell at 40% of catalog price.
	assert.Equal(t, int64(320), result.SellPrice)
	assert.Equal(t, int64(1000-1600+320), result.NewBalance)

	entries, err := f.service.GetInventory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
}

func TestSellNotOwned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	_, err := f.service.Sell(ctx, 1, testPistol)
	assert.ErrorIs(t, err, domain.ErrItemNotOwned)
	assert.Equal(t, int64(1000), f.balance(t, 1), "failed sell must not touch the balance")
}

func TestSellEquippedLastUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)
	_, err := f.service.Purchase(ctx, 1, testPistol, 1)
	require.NoError(t, err)
	require.NoError(t, f.service.EquipItem(ctx, 1, testPistol, domain.SlotWeapon1))

	_, err = f.service.Sell(ctx, 1, testPistol)
	require.NoError(t, err)

	ch, err := f.repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, ch.EquippedWeapon1, "selling the worn last unit clears the slot")

	entries, err := f.service.GetInventory(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEquipAndUnequip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 5000)
	_, err := f.service.Purchase(ctx, 1, testVest, 1)
	require.NoError(t, err)

	require.NoError(t, f.service.EquipItem(ctx, 1, testVest, domain.SlotArmor))

	ch, err := f.service.GetCharacter(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, ch.EquippedArmor)
	assert.Equal(t, testVest, *ch.EquippedArmor)

	require.NoError(t, f.service.UnequipItem(ctx, 1, domain.SlotArmor))

	ch, err = f.service.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, ch.EquippedArmor)
}

func TestEquipWrongSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 5000)
	_, err := f.service.Purchase(ctx, 1, testVest, 1)
	require.NoError(t, err)

	err = f.service.EquipItem(ctx, 1, testVest, domain.SlotWeapon1)
	assert.ErrorIs(t, err, domain.ErrSlotInvalid)
}

func TestGetCharacterCachesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	first, err := f.service.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), first.MoneyBalance)

	_, err = f.service.Purchase(ctx, 1, testPistol, 1)
	require.NoError(t, err)

	second, err := f.service.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(200), second.MoneyBalance, "mutations invalidate the cached snapshot")
}

func TestProgressFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCharacter(t, 1, 1000)

	_, err := f.service.Purchase(ctx, 1, testPistol, 1)
	require.NoError(t, err)
	f.drain(t)

	bought := f.sink.byMetric(domain.MetricItemsBought)
	require.Len(t, bought, 1)
	assert.Equal(t, int64(1), bought[0].value)

	balances := f.sink.byMetric(domain.MetricMoneyBalance)
	require.Len(t, balances, 1)
	assert.Equal(t, int64(200), balances[0].value)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ch, err := f.service.Register(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney, ch.MoneyBalance)
	assert.Equal(t, domain.StartingLevel, ch.Level)

	_, err = f.service.Register(ctx, 7)
	assert.Error(t, err, "duplicate registration rejected")
}
