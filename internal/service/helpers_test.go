package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/phrazzld/lexis-api/internal/store/memory"
	"github.com/stretchr/testify/require"
)

// 14:00 UTC; the learning day started at 04:00
var testNow = time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *memory.Store
	repos    store.Repos
	now      time.Time
	userID   uuid.UUID
	items    service.ItemService
	learners service.LearnerService
	sessions service.SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := memory.New()
	e := &testEnv{
		store:  s,
		repos:  store.Repos{Items: s.Items(), Progress: s.Progress()},
		now:    testNow,
		userID: uuid.New(),
	}

	log, _ := logger.NewBufferLogger()
	clock := service.WithClock(func() time.Time { return e.now })
	tracker := streak.NewTracker()

	e.items = service.NewItemService(e.repos, s, srs.NewDefaultService(),
		service.DefaultDeferBelowImportance, log, clock)
	e.learners = service.NewLearnerService(e.repos, s, tracker,
		service.DefaultLearnerSettings(), log, clock)
	e.sessions = service.NewSessionService(e.repos, tracker, 0, log, clock)
	return e
}

// withLearner creates the learner's progress with goal and applies mutate.
func (e *testEnv) withLearner(t *testing.T, goal int, mutate func(*domain.UserProgress)) *testEnv {
	t.Helper()
	p, err := domain.NewUserProgress(e.userID, goal, testNow.AddDate(0, -2, 0))
	require.NoError(t, err)
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, e.repos.Progress.Create(context.Background(), p))
	return e
}

// seed stores a new vocabulary collection item created at createdAt, then applies mutate.
func (e *testEnv) seed(
	t *testing.T,
	term string,
	createdAt time.Time,
	mutate func(*domain.LearningItem),
) *domain.LearningItem {
	t.Helper()
	item, err := domain.NewLearningItem(domain.NewItemParams{
		UserID:     e.userID,
		Kind:       domain.ItemKindVocabulary,
		Term:       term,
		Source:     domain.ItemSourceCollection,
		EaseFactor: 2.5,
	}, createdAt)
	require.NoError(t, err)
	if mutate != nil {
		mutate(item)
	}
	require.NoError(t, e.repos.Items.Create(context.Background(), item))
	return item
}

// reviewed marks an item as recalled once and due again at due.
func reviewed(updatedAt, due time.Time) func(*domain.LearningItem) {
	return func(i *domain.LearningItem) {
		i.Repetition = 1
		i.Interval = 1
		i.UpdatedAt = updatedAt
		i.NextReviewAt = due
	}
}

func terms(items []*domain.LearningItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Term)
	}
	return out
}
