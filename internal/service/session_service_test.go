package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(q *session.Queue) []string {
	var out []string
	for item, ok := q.Next(); ok; item, ok = q.Next() {
		out = append(out, item.Term)
	}
	return out
}

func testSourced(importance int) func(*domain.LearningItem) {
	return func(i *domain.LearningItem) {
		i.Source = domain.ItemSourceTest
		i.ImportanceScore = importance
	}
}

func TestBuildSessionQueueInterleaves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEnv(t).withLearner(t, 2, nil)

	// d1 is the most overdue
	for i, term := range []string{"d1", "d2", "d3", "d4", "d5"} {
		due := testNow.Add(-time.Duration(10-i) * time.Hour)
		e.seed(t, term, testNow.AddDate(0, 0, -10), reviewed(testNow.AddDate(0, 0, -3), due))
	}
	// n1 is the newest
	e.seed(t, "n2", testNow.Add(-3*time.Hour), testSourced(4))
	e.seed(t, "n1", testNow.Add(-2*time.Hour), testSourced(4))

	q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
	require.NoError(t, err)
	assert.Equal(t, 7, q.Len())
	assert.Equal(t, []string{"d1", "d2", "d3", "n1", "d4", "d5", "n2"}, drain(q))
	assert.True(t, q.Done())

	_, ok := q.Next()
	assert.False(t, ok, "a drained queue stays empty")
}

func TestBuildSessionQueueNewItemPriority(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEnv(t).withLearner(t, 3, nil)

	e.seed(t, "important-old", testNow.Add(-5*time.Hour), testSourced(3))
	e.seed(t, "important-new", testNow.Add(-4*time.Hour), testSourced(4))
	e.seed(t, "minor", testNow.Add(-1*time.Hour), testSourced(2))
	e.seed(t, "collected-old", testNow.Add(-3*time.Hour), nil)
	e.seed(t, "collected-new", testNow.Add(-2*time.Hour), nil)
	e.seed(t, "manual", testNow.Add(-time.Minute), func(i *domain.LearningItem) {
		i.Source = domain.ItemSourceManual
	})

	q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
	require.NoError(t, err)
	assert.Equal(t, []string{"important-new", "important-old", "collected-new"}, drain(q))
}

func TestBuildSessionQueueQuota(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("goal reached gives a pure review session", func(t *testing.T) {
		e := newTestEnv(t).withLearner(t, 2, nil)
		tomorrow := testNow.AddDate(0, 0, 1)
		e.seed(t, "learned-1", testNow.AddDate(0, 0, -1), reviewed(testNow.Add(-time.Hour), tomorrow))
		e.seed(t, "learned-2", testNow.AddDate(0, 0, -1), reviewed(testNow.Add(-time.Hour), tomorrow))
		e.seed(t, "due", testNow.AddDate(0, 0, -5), reviewed(testNow.AddDate(0, 0, -2), testNow.Add(-time.Hour)))
		e.seed(t, "new", testNow.Add(-time.Hour), nil)

		q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
		require.NoError(t, err)
		assert.Equal(t, []string{"due"}, drain(q))
	})

	t.Run("failed review today still counts toward the day", func(t *testing.T) {
		e := newTestEnv(t).withLearner(t, 2, nil)
		e.seed(t, "failed", testNow.AddDate(0, 0, -1), func(i *domain.LearningItem) {
			i.Interval = 1
			i.UpdatedAt = testNow.Add(-time.Hour)
			i.NextReviewAt = testNow.AddDate(0, 0, 1)
		})
		e.seed(t, "new-1", testNow.Add(-2*time.Hour), nil)
		e.seed(t, "new-2", testNow.Add(-time.Hour), nil)

		q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
		require.NoError(t, err)
		assert.Equal(t, []string{"new-2"}, drain(q))
	})

	t.Run("learning from yesterday does not reduce quota", func(t *testing.T) {
		e := newTestEnv(t).withLearner(t, 1, nil)
		e.seed(t, "yesterday", testNow.AddDate(0, 0, -2),
			reviewed(testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 1)))
		e.seed(t, "new", testNow.Add(-time.Hour), nil)

		q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
		require.NoError(t, err)
		assert.Equal(t, []string{"new"}, drain(q))
	})
}

func TestBuildSessionQueueExclusions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEnv(t).withLearner(t, 10, nil)

	e.seed(t, "lapsed", testNow.AddDate(0, 0, -9), func(i *domain.LearningItem) {
		i.Interval = 3
		i.NextReviewAt = testNow.Add(-time.Hour)
		i.UpdatedAt = testNow.AddDate(0, 0, -3)
	})
	e.seed(t, "deferred-due", testNow.AddDate(0, 0, -9), func(i *domain.LearningItem) {
		reviewed(testNow.AddDate(0, 0, -3), testNow.Add(-time.Hour))(i)
		i.IsDeferred = true
	})
	e.seed(t, "deferred-new", testNow.Add(-time.Hour), func(i *domain.LearningItem) {
		i.IsDeferred = true
	})
	e.seed(t, "not-yet-due", testNow.Add(-time.Hour), func(i *domain.LearningItem) {
		i.NextReviewAt = testNow.Add(time.Hour)
	})
	e.seed(t, "grammar", testNow.Add(-time.Hour), func(i *domain.LearningItem) {
		i.Kind = domain.ItemKindGrammar
	})

	q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
	require.NoError(t, err)
	assert.Equal(t, []string{"lapsed"}, drain(q))

	q, err = e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindGrammar)
	require.NoError(t, err)
	assert.Equal(t, []string{"grammar"}, drain(q))
}

func TestBuildSessionQueueEmptyAndErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEnv(t).withLearner(t, 5, nil)

	q, err := e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKindVocabulary)
	require.NoError(t, err)
	assert.True(t, q.Done())
	assert.Equal(t, 0, q.Len())

	_, err = e.sessions.BuildSessionQueue(ctx, e.userID, domain.ItemKind("idiom"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.sessions.BuildSessionQueue(ctx, uuid.New(), domain.ItemKindVocabulary)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
