package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/mocks"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockedRepos(t *testing.T) (*mocks.TestifyMockItemStore, *mocks.TestifyMockProgressStore, store.Repos) {
	t.Helper()
	items := &mocks.TestifyMockItemStore{}
	progress := &mocks.TestifyMockProgressStore{}
	t.Cleanup(func() {
		items.AssertExpectations(t)
		progress.AssertExpectations(t)
	})
	return items, progress, store.Repos{Items: items, Progress: progress}
}

func fixedClock() service.Option {
	return service.WithClock(func() time.Time { return testNow })
}

func TestDashboardStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	items, progress, repos := mockedRepos(t)
	userID := uuid.New()

	p, err := domain.NewUserProgress(userID, 10, testNow)
	require.NoError(t, err)

	cause := errors.New("connection refused")
	progress.On("Get", mock.Anything, userID).Return(p, nil).Once()
	items.On("CountByUser", mock.Anything, userID, mock.Anything).Return(0, cause).Maybe()
	items.On("ListCategories", mock.Anything, userID, mock.Anything).Return([]string{}, nil).Maybe()

	svc := service.NewLearnerService(repos, &mocks.MockTransactor{Repos: repos},
		streak.NewTracker(), service.DefaultLearnerSettings(), nil, fixedClock())

	_, err = svc.GetDashboardSnapshot(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.ErrorIs(t, err, cause)

	var svcErr *service.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "dashboard", svcErr.Op)
}

func TestTransactionFailureIsDataUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, repos := mockedRepos(t)

	tx := &mocks.MockTransactor{
		Repos: repos,
		Err:   fmt.Errorf("%w: begin: %w", store.ErrTransactionFailed, errors.New("pool exhausted")),
	}
	svc := service.NewLearnerService(repos, tx, streak.NewTracker(),
		service.DefaultLearnerSettings(), nil, fixedClock())

	_, err := svc.BuyStreakFreeze(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.ErrorIs(t, err, store.ErrTransactionFailed)
	assert.Equal(t, 1, tx.Calls)
}

func TestSessionStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	items, progress, repos := mockedRepos(t)
	userID := uuid.New()

	p, err := domain.NewUserProgress(userID, 10, testNow)
	require.NoError(t, err)

	progress.On("Get", mock.Anything, userID).Return(p, nil).Once()
	items.On("FindByUser", mock.Anything, userID, mock.Anything, store.OrderNextReviewAsc, 0).
		Return(nil, context.DeadlineExceeded).Once()

	svc := service.NewSessionService(repos, streak.NewTracker(), 3, nil, fixedClock())

	_, err = svc.BuildSessionQueue(ctx, userID, domain.ItemKindVocabulary)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCaptureStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	items, progress, repos := mockedRepos(t)
	userID := uuid.New()

	p, err := domain.NewUserProgress(userID, 10, testNow)
	require.NoError(t, err)

	progress.On("Get", mock.Anything, userID).Return(p, nil).Once()
	items.On("Create", mock.Anything, mock.MatchedBy(func(item *domain.LearningItem) bool {
		return item.UserID == userID && item.Term == "Brot"
	})).Return(errors.New("disk full")).Once()

	svc := service.NewItemService(repos, &mocks.MockTransactor{Repos: repos}, srs.NewDefaultService(),
		service.DefaultDeferBelowImportance, nil, fixedClock())

	_, err = svc.CaptureItem(ctx, userID, service.CaptureRequest{
		Kind: domain.ItemKindVocabulary, Term: "Brot", Source: domain.ItemSourceCollection,
	})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestConstructorsPanicOnMissingDependencies(t *testing.T) {
	t.Parallel()
	_, _, repos := mockedRepos(t)
	tx := &mocks.MockTransactor{Repos: repos}
	tracker := streak.NewTracker()

	assert.Panics(t, func() {
		service.NewItemService(store.Repos{}, tx, srs.NewDefaultService(), 2, nil)
	})
	assert.Panics(t, func() {
		service.NewItemService(repos, nil, srs.NewDefaultService(), 2, nil)
	})
	assert.Panics(t, func() {
		service.NewLearnerService(repos, tx, nil, service.DefaultLearnerSettings(), nil)
	})
	assert.Panics(t, func() {
		service.NewSessionService(store.Repos{}, tracker, 3, nil)
	})
}
