package task

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/ledger"
	"github.com/undercity-game/undercity/internal/repository/memory"
)

func newFixture(t *testing.T) (*memory.Repo, Service) {
	t.Helper()
	repo := memory.NewRepo()
	repo.SeedTask(domain.TaskDefinition{
		ID: 1, Metric: domain.MetricCrimesCommitted, Name: "Petty Thief", Goal: 10,
		Reward: domain.RewardBundle{Money: 500, Exp: 50}, Active: true,
	})
	repo.SeedTask(domain.TaskDefinition{
		ID: 2, Metric: domain.MetricMoneyBalance, Name: "First Grand", Goal: 1000,
		Reward: domain.RewardBundle{Points: 10}, Active: true,
	})
	repo.SeedTask(domain.TaskDefinition{
		ID: 3, Metric: domain.MetricCrimesCommitted, Name: "Retired Scheme", Goal: 5,
		Reward: domain.RewardBundle{Money: 100}, Active: false,
	})
	svc := NewService(repo, economy.NewUnitOfWork(repo), nil)
	return repo, svc
}

func seedCharacter(t *testing.T, repo *memory.Repo, id int64) {
	t.Helper()
	require.NoError(t, repo.CreateCharacter(context.Background(), ledger.NewCharacter(id)))
}

func progressFor(t *testing.T, repo *memory.Repo, characterID int64, taskID int) *domain.TaskProgress {
	t.Helper()
	all, err := repo.ListProgress(context.Background(), characterID)
	require.NoError(t, err)
	for i := range all {
		if all[i].TaskID == taskID {
			return &all[i]
		}
	}
	return nil
}

func TestUpdateProgressIncremental(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)

	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 3))
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 4))

	p := progressFor(t, repo, 1, 1)
	require.NotNil(t, p)
	assert.Equal(t, int64(7), p.Progress)
	assert.False(t, p.IsCompleted)
}

func TestUpdateProgressSkipsInactiveTasks(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)

	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 6))

	assert.Nil(t, progressFor(t, repo, 1, 3), "inactive tasks receive no progress")
}

func TestUpdateProgressAbsoluteIsMonotonic(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)

	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricMoneyBalance, 800))
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricMoneyBalance, 300))

	p := progressFor(t, repo, 1, 2)
	require.NotNil(t, p)
	assert.Equal(t, int64(800), p.Progress, "absolute progress never decreases")
}

func TestUpdateProgressClampsAtGoal(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)

	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 25))

	p := progressFor(t, repo, 1, 1)
	require.NotNil(t, p)
	assert.Equal(t, int64(10), p.Progress)
	assert.True(t, p.IsCompleted)
}

func TestUpdateProgressRejectsUnknownMetric(t *testing.T) {
	_, svc := newFixture(t)

	err := svc.UpdateProgress(context.Background(), 1, domain.Metric("karma"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 10))

	result, err := svc.ClaimReward(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), result.Reward.Money)

	ch, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney+500, ch.MoneyBalance)
	assert.Equal(t, int64(50), ch.Exp)
}

func TestClaimRewardNotCompleted(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 4))

	_, err := svc.ClaimReward(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotCompleted)

	ch, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney, ch.MoneyBalance, "failed claim pays nothing")
}

func TestClaimRewardTwice(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 10))

	_, err := svc.ClaimReward(ctx, 1, 1)
	require.NoError(t, err)

	_, err = svc.ClaimReward(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	ch, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StartingMoney+500, ch.MoneyBalance, "reward paid exactly once")
}

func TestClaimRewardUnknownTask(t *testing.T) {
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)

	_, err := svc.ClaimReward(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	seedCharacter(t, repo, 1)
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricCrimesCommitted, 10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, losses := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClaimReward(ctx, 1, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case domain.IsRetryable(err):
				// Lock-wait timeout under contention; the claim itself
				// still happened at most once.
			default:
				assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
				losses++
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, wins, 1)

	ch, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, ch.MoneyBalance, domain.StartingMoney+500, "at most one payout")
}

func TestClaimRewardLevelUp(t *testing.T) {
	ctx := context.Background()
	repo, svc := newFixture(t)
	repo.SeedTask(domain.TaskDefinition{
		ID: 4, Metric: domain.MetricItemsBought, Name: "Big Spender", Goal: 1,
		Reward: domain.RewardBundle{Exp: 150}, Active: true,
	})
	seedCharacter(t, repo, 1)
	require.NoError(t, svc.UpdateProgress(ctx, 1, domain.MetricItemsBought, 1))

	result, err := svc.ClaimReward(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, result.NewLevel)

	ch, err := repo.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ch.MaxHP, ch.HP, "level up refills health")
	assert.Equal(t, ch.MaxEnergy, ch.Energy)
}
