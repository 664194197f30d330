package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undercity-game/undercity/internal/domain"
)

func seedCharacter(t *testing.T, repo *Repo, id int64, money int64) {
	t.Helper()
	err := repo.CreateCharacter(context.Background(), &domain.Character{
		ID: id, Level: 1, MoneyBalance: money, MaxHP: 100, HP: 100, MaxEnergy: 50, Energy: 50,
	})
	require.NoError(t, err)
}

func TestStagedWritesInvisibleUntilCommit(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	seedCharacter(t, repo, 1, 500)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	ch, err := tx.GetCharacterForUpdate(ctx, 1)
	require.NoError(t, err)
	ch.MoneyBalance = 100
	require.NoError(t, tx.UpdateCharacter(ctx, ch))

	outside, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), outside.MoneyBalance)

	require.NoError(t, tx.Commit(ctx))

	after, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), after.MoneyBalance)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	seedCharacter(t, repo, 1, 500)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	ch, err := tx.GetCharacterForUpdate(ctx, 1)
	require.NoError(t, err)
	ch.MoneyBalance = 0
	require.NoError(t, tx.UpdateCharacter(ctx, ch))
	require.NoError(t, tx.Rollback(ctx))

	after, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), after.MoneyBalance)
}

func TestLockWaitTimesOut(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	repo.lockWait = 20 * time.Millisecond
	seedCharacter(t, repo, 1, 500)

	holder, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	_, err = holder.GetCharacterForUpdate(ctx, 1)
	require.NoError(t, err)

	waiter, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	_, err = waiter.GetCharacterForUpdate(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrBusy)

	require.NoError(t, holder.Commit(ctx))
	require.NoError(t, waiter.Rollback(ctx))
}

func TestCollectTaskRewardSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	repo.SeedTask(domain.TaskDefinition{ID: 1, Metric: domain.MetricCrimesCommitted, Goal: 5, Active: true})
	seedCharacter(t, repo, 1, 0)

	_, err := repo.ApplyProgress(ctx, 1, domain.TaskDefinition{ID: 1, Metric: domain.MetricCrimesCommitted, Goal: 5}, 5)
	require.NoError(t, err)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	won, err := tx.CollectTaskReward(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, won)

	again, err := tx.CollectTaskReward(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, again)
	require.NoError(t, tx.Rollback(ctx))
}

func TestRollbackReopensCollectedReward(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	repo.SeedTask(domain.TaskDefinition{ID: 1, Metric: domain.MetricCrimesCommitted, Goal: 5, Active: true})
	seedCharacter(t, repo, 1, 0)

	_, err := repo.ApplyProgress(ctx, 1, domain.TaskDefinition{ID: 1, Metric: domain.MetricCrimesCommitted, Goal: 5}, 5)
	require.NoError(t, err)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	won, err := tx.CollectTaskReward(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, won)
	require.NoError(t, tx.Rollback(ctx))

	retry, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	won, err = retry.CollectTaskReward(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, won)
	require.NoError(t, retry.Commit(ctx))
}

func TestRollbackRemovesCreatedContract(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	seedCharacter(t, repo, 1, 500)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	contract := &domain.Contract{
		PosterID:  1,
		TargetID:  2,
		Status:    domain.ContractOpen,
		Reward:    100,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tx.CreateContract(ctx, contract))
	require.NoError(t, tx.Rollback(ctx))

	_, err = repo.GetContract(ctx, contract.ID)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
}

func TestRollbackReopensContractTransition(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo()
	seedCharacter(t, repo, 1, 500)
	seedCharacter(t, repo, 2, 0)

	setup, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	contract := &domain.Contract{
		PosterID:  1,
		TargetID:  3,
		Status:    domain.ContractOpen,
		Reward:    100,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, setup.CreateContract(ctx, contract))
	require.NoError(t, setup.Commit(ctx))

	fulfiller := int64(2)
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	won, err := tx.TransitionContract(ctx, contract.ID, domain.ContractFulfilled, &fulfiller)
	require.NoError(t, err)
	require.True(t, won)
	require.NoError(t, tx.Rollback(ctx))

	reloaded, err := repo.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractOpen, reloaded.Status)
	assert.Nil(t, reloaded.FulfilledBy)

	retry, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	won, err = retry.TransitionContract(ctx, contract.ID, domain.ContractExpired, nil)
	require.NoError(t, err)
	assert.True(t, won)
	require.NoError(t, retry.Commit(ctx))
}
