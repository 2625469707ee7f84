package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/session"
	"github.com/phrazzld/lexis-api/internal/service"
)

// MockLearnerService implements service.LearnerService for testing.
// Unset functions return zero values.
type MockLearnerService struct {
	CreateLearnerFn        func(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, bool, error)
	UpdateDailyGoalFn      func(ctx context.Context, userID uuid.UUID, goal int) (*domain.UserProgress, error)
	BuyStreakFreezeFn      func(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
	GetDashboardSnapshotFn func(ctx context.Context, userID uuid.UUID) (*service.DashboardSnapshot, error)
}

var _ service.LearnerService = (*MockLearnerService)(nil)

// CreateLearner implements service.LearnerService
func (m *MockLearnerService) CreateLearner(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, bool, error) {
	if m.CreateLearnerFn != nil {
		return m.CreateLearnerFn(ctx, userID)
	}
	return nil, false, nil
}

// UpdateDailyGoal implements service.LearnerService
func (m *MockLearnerService) UpdateDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*domain.UserProgress, error) {
	if m.UpdateDailyGoalFn != nil {
		return m.UpdateDailyGoalFn(ctx, userID, goal)
	}
	return nil, nil
}

// BuyStreakFreeze implements service.LearnerService
func (m *MockLearnerService) BuyStreakFreeze(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	if m.BuyStreakFreezeFn != nil {
		return m.BuyStreakFreezeFn(ctx, userID)
	}
	return nil, nil
}

// GetDashboardSnapshot implements service.LearnerService
func (m *MockLearnerService) GetDashboardSnapshot(ctx context.Context, userID uuid.UUID) (*service.DashboardSnapshot, error) {
	if m.GetDashboardSnapshotFn != nil {
		return m.GetDashboardSnapshotFn(ctx, userID)
	}
	return nil, nil
}

// MockItemService implements service.ItemService for testing.
type MockItemService struct {
	CaptureItemFn func(ctx context.Context, userID uuid.UUID, req service.CaptureRequest) (*domain.LearningItem, error)
	ListInboxFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.LearningItem, error)
	PromoteItemFn func(ctx context.Context, userID, itemID uuid.UUID) (*domain.LearningItem, error)
	DeleteItemFn  func(ctx context.Context, userID, itemID uuid.UUID) error
}

var _ service.ItemService = (*MockItemService)(nil)

// CaptureItem implements service.ItemService
func (m *MockItemService) CaptureItem(
	ctx context.Context,
	userID uuid.UUID,
	req service.CaptureRequest,
) (*domain.LearningItem, error) {
	if m.CaptureItemFn != nil {
		return m.CaptureItemFn(ctx, userID, req)
	}
	return nil, nil
}

// ListInbox implements service.ItemService
func (m *MockItemService) ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.LearningItem, error) {
	if m.ListInboxFn != nil {
		return m.ListInboxFn(ctx, userID)
	}
	return nil, nil
}

// PromoteItem implements service.ItemService
func (m *MockItemService) PromoteItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.LearningItem, error) {
	if m.PromoteItemFn != nil {
		return m.PromoteItemFn(ctx, userID, itemID)
	}
	return nil, nil
}

// DeleteItem implements service.ItemService
func (m *MockItemService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.DeleteItemFn != nil {
		return m.DeleteItemFn(ctx, userID, itemID)
	}
	return nil
}

// MockSessionService implements service.SessionService for testing.
type MockSessionService struct {
	BuildSessionQueueFn func(ctx context.Context, userID uuid.UUID, kind domain.ItemKind) (*session.Queue, error)
}

var _ service.SessionService = (*MockSessionService)(nil)

// BuildSessionQueue implements service.SessionService
func (m *MockSessionService) BuildSessionQueue(
	ctx context.Context,
	userID uuid.UUID,
	kind domain.ItemKind,
) (*session.Queue, error) {
	if m.BuildSessionQueueFn != nil {
		return m.BuildSessionQueueFn(ctx, userID, kind)
	}
	return session.NewQueue(nil), nil
}
