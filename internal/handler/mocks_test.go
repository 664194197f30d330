package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/undercity-game/undercity/internal/domain"
	"github.com/undercity-game/undercity/internal/economy"
	"github.com/undercity-game/undercity/internal/task"
)

// MockEconomyService is a testify mock for economy.Service
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Register(ctx context.Context, characterID int64) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockEconomyService) GetCharacter(ctx context.Context, characterID int64) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockEconomyService) GetInventory(ctx context.Context, characterID int64) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockEconomyService) Purchase(ctx context.Context, characterID int64, ref domain.ItemRef, quantity int) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, characterID, ref, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) Sell(ctx context.Context, characterID int64, ref domain.ItemRef) (*economy.SellResult, error) {
	args := m.Called(ctx, characterID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.SellResult), args.Error(1)
}

func (m *MockEconomyService) EquipItem(ctx context.Context, characterID int64, ref domain.ItemRef, slot domain.Slot) error {
	args := m.Called(ctx, characterID, ref, slot)
	return args.Error(0)
}

func (m *MockEconomyService) UnequipItem(ctx context.Context, characterID int64, slot domain.Slot) error {
	args := m.Called(ctx, characterID, slot)
	return args.Error(0)
}

func (m *MockEconomyService) Deposit(ctx context.Context, characterID int64, amount int64) (*economy.BankResult, error) {
	args := m.Called(ctx, characterID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.BankResult), args.Error(1)
}

func (m *MockEconomyService) Withdraw(ctx context.Context, characterID int64, amount int64) (*economy.BankResult, error) {
	args := m.Called(ctx, characterID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.BankResult), args.Error(1)
}

func (m *MockEconomyService) Transfer(ctx context.Context, fromID, toID int64, amount int64) error {
	args := m.Called(ctx, fromID, toID, amount)
	return args.Error(0)
}

func (m *MockEconomyService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTaskService is a testify mock for task.Service
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]domain.TaskDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskDefinition), args.Error(1)
}

func (m *MockTaskService) GetProgress(ctx context.Context, characterID int64) ([]domain.TaskProgress, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskProgress), args.Error(1)
}

func (m *MockTaskService) UpdateProgress(ctx context.Context, characterID int64, metric domain.Metric, value int64) error {
	args := m.Called(ctx, characterID, metric, value)
	return args.Error(0)
}

func (m *MockTaskService) ClaimReward(ctx context.Context, characterID int64, taskID int) (*task.ClaimResult, error) {
	args := m.Called(ctx, characterID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.ClaimResult), args.Error(1)
}

// MockContractService is a testify mock for contract.Service
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) Post(ctx context.Context, posterID, targetID int64, reward int64, ttl time.Duration) (*domain.Contract, error) {
	args := m.Called(ctx, posterID, targetID, reward, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractService) Fulfill(ctx context.Context, contractID uuid.UUID, fulfillerID int64) (*domain.Contract, error) {
	args := m.Called(ctx, contractID, fulfillerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractService) Get(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractService) ListOpen(ctx context.Context) ([]domain.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
