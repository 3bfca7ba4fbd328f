package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boliche/events"
	"boliche/models"
)

// MockBettorRepository is a mock implementation of BettorRepository
type MockBettorRepository struct {
	mock.Mock
}

func (m *MockBettorRepository) List(ctx context.Context) ([]*models.Bettor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bettor), args.Error(1)
}

func (m *MockBettorRepository) GetByID(ctx context.Context, id string) (*models.Bettor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bettor), args.Error(1)
}

func (m *MockBettorRepository) Create(ctx context.Context, in *models.BettorCreate) (*models.Bettor, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bettor), args.Error(1)
}

func (m *MockBettorRepository) Update(ctx context.Context, id string, in *models.BettorUpdate) (*models.Bettor, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bettor), args.Error(1)
}

func (m *MockBettorRepository) UpdateTotals(ctx context.Context, id string, wagered, won, balance float64) error {
	args := m.Called(ctx, id, wagered, won, balance)
	return args.Error(0)
}

func (m *MockBettorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id string) (*models.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) Create(ctx context.Context, w *models.Wager) (*models.Wager, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) Update(ctx context.Context, id string, in *models.WagerUpdate) (*models.Wager, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPenaltyRepository is a mock implementation of PenaltyRepository
type MockPenaltyRepository struct {
	mock.Mock
}

func (m *MockPenaltyRepository) List(ctx context.Context, filter models.PenaltyFilter) ([]*models.Penalty, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) Page(ctx context.Context, filter models.PenaltyFilter, offset string) ([]*models.Penalty, string, error) {
	args := m.Called(ctx, filter, offset)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*models.Penalty), args.String(1), args.Error(2)
}

func (m *MockPenaltyRepository) Create(ctx context.Context, in *models.PenaltyCreate) (*models.Penalty, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) Update(ctx context.Context, id string, in *models.PenaltyUpdate) (*models.Penalty, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPenaltyRepository) FoodOptions(ctx context.Context, defaults []string) ([]string, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

// MockReconciler is a mock implementation of Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, bettorID string) error {
	args := m.Called(ctx, bettorID)
	return args.Error(0)
}
