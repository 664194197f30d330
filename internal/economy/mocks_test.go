package economy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undercity-game/undercity/internal/catalog"
	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/repository/memory"
)

// recordingSink captures progress updates fed after commits
type recordingSink struct {
	mu      sync.Mutex
	updates []sinkUpdate
}

type sinkUpdate struct {
	characterID int64
	metric      domain.Metric
	value       int64
}

func (s *recordingSink) UpdateProgress(_ context.Context, characterID int64, metric domain.Metric, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, sinkUpdate{characterID, metric, value})
	return nil
}

func (s *recordingSink) byMetric(metric domain.Metric) []sinkUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sinkUpdate, 0)
	for _, u := range s.updates {
		if u.metric == metric {
			out = append(out, u)
		}
	}
	return out
}

var (
	testPistol = domain.ItemRef{Kind: domain.ItemKindWeapon, ID: 1}
	testVest   = domain.ItemRef{Kind: domain.ItemKindArmor, ID: 1}
	testSquat  = domain.ItemRef{Kind: domain.ItemKindHouse, ID: 1}
)

func testCatalog(t *testing.T) catalog.Lookup {
	t.Helper()
	lookup, err := catalog.New(&catalog.Config{
		Version: "1.0",
		Items: []catalog.Def{
			{Kind: "weapon", ID: 1, Name: "Pistol", Price: 800},
			{Kind: "armor", ID: 1, Name: "Kevlar Vest", Price: 1200},
			{Kind: "house", ID: 1, Name: "Squat", Price: 0},
			{Kind: "special", ID: 1, Name: "Lockpick Set", Price: 40, Currency: "credits"},
		},
	})
	require.NoError(t, err)
	return lookup
}

type fixture struct {
	repo    *memory.Repo
	sink    *recordingSink
	service Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewRepo()
	sink := &recordingSink{}
	svc := NewService(repo, testCatalog(t), nil, sink)
	return &fixture{repo: repo, sink: sink, service: svc}
}

func (f *fixture) seedCharacter(t *testing.T, id int64, money int64) {
	t.Helper()
	err := f.repo.CreateCharacter(context.Background(), &domain.Character{
		ID: id, Level: 1, MoneyBalance: money, MaxHP: 100, HP: 100, MaxEnergy: 50, Energy: 50,
	})
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, id int64) int64 {
	t.Helper()
	ch, err := f.repo.GetCharacter(context.Background(), id)
	require.NoError(t, err)
	return ch.MoneyBalance
}

func (f *fixture) drain(t *testing.T) {
	t.Helper()
	require.NoError(t, f.service.Shutdown(context.Background()))
}
