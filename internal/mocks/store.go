package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockItemStore is a mock of store.ItemStore for use with testify/mock
type TestifyMockItemStore struct {
	mock.Mock
}

var _ store.ItemStore = (*TestifyMockItemStore)(nil)

// Create is a mock implementation of store.ItemStore.Create
func (m *TestifyMockItemStore) Create(ctx context.Context, item *domain.LearningItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ItemStore.GetByID
func (m *TestifyMockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*domain.LearningItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUser is a mock implementation of store.ItemStore.FindByUser
func (m *TestifyMockItemStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
	order store.ItemOrder,
	limit int,
) ([]*domain.LearningItem, error) {
	args := m.Called(ctx, userID, filter, order, limit)
	if items, ok := args.Get(0).([]*domain.LearningItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountByUser is a mock implementation of store.ItemStore.CountByUser
func (m *TestifyMockItemStore) CountByUser(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) (int, error) {
	args := m.Called(ctx, userID, filter)
	return args.Int(0), args.Error(1)
}

// ListCategories is a mock implementation of store.ItemStore.ListCategories
func (m *TestifyMockItemStore) ListCategories(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
) ([]string, error) {
	args := m.Called(ctx, userID, filter)
	if categories, ok := args.Get(0).([]string); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.ItemStore.Update
func (m *TestifyMockItemStore) Update(ctx context.Context, item *domain.LearningItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Delete is a mock implementation of store.ItemStore.Delete
func (m *TestifyMockItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestifyMockProgressStore is a mock of store.ProgressStore for use with testify/mock
type TestifyMockProgressStore struct {
	mock.Mock
}

var _ store.ProgressStore = (*TestifyMockProgressStore)(nil)

// Create is a mock implementation of store.ProgressStore.Create
func (m *TestifyMockProgressStore) Create(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// Get is a mock implementation of store.ProgressStore.Get
func (m *TestifyMockProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.UserProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetForUpdate is a mock implementation of store.ProgressStore.GetForUpdate
func (m *TestifyMockProgressStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.UserProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.ProgressStore.Update
func (m *TestifyMockProgressStore) Update(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// MockTransactor runs callbacks directly against Repos without a real transaction.
// Err, when set, is returned before fn runs.
type MockTransactor struct {
	Repos store.Repos
	Err   error
	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements store.Transactor
func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repos) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, m.Repos)
}
