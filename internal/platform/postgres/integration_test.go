//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/postgres"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/phrazzld/lexis-api/internal/testdb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoresAgainstPostgres(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		items := postgres.NewPostgresItemStore(tx, nil)
		progress := postgres.NewPostgresProgressStore(tx, nil)

		userID := uuid.New()
		p, err := domain.NewUserProgress(userID, 0, now)
		require.NoError(t, err)
		require.NoError(t, progress.Create(ctx, p))

		locked, err := progress.GetForUpdate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultDailyNewItemGoal, locked.DailyNewItemGoal)

		newItem := func(term, category string, deferred bool) *domain.LearningItem {
			item, err := domain.NewLearningItem(domain.NewItemParams{
				UserID: userID, Kind: domain.ItemKindVocabulary, Term: term, Category: category,
				Source: domain.ItemSourceCollection, EaseFactor: 2.5, Deferred: deferred,
			}, now)
			require.NoError(t, err)
			require.NoError(t, items.Create(ctx, item))
			return item
		}
		first := newItem("Haus", "nouns", false)
		newItem("laufen", "verbs", false)
		newItem("obwohl", "", true)

		fresh, err := items.FindByUser(ctx, userID, store.ItemFilter{
			Deferred:      lo.ToPtr(false),
			MaxRepetition: lo.ToPtr(0),
			DueAtOrBefore: lo.ToPtr(now),
		}, store.OrderCreatedDesc, 0)
		require.NoError(t, err)
		assert.Len(t, fresh, 2)

		categories, err := items.ListCategories(ctx, userID, store.ItemFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"nouns", "verbs"}, categories)

		first.Repetition, first.Interval = 1, 1
		first.NextReviewAt = now.AddDate(0, 0, 1)
		first.UpdatedAt = now
		require.NoError(t, items.Update(ctx, first))

		learned, err := items.CountByUser(ctx, userID, store.ItemFilter{
			MinRepetition: lo.ToPtr(1),
			UpdatedSince:  lo.ToPtr(now.Add(-time.Hour)),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, learned)

		require.NoError(t, items.Delete(ctx, first.ID))
		_, err = items.GetByID(ctx, first.ID)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})
}

func TestTransactorRollsBackOnError(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	tx := postgres.NewTransactor(db, nil)

	userID := uuid.New()
	p, err := domain.NewUserProgress(userID, 5, time.Now().UTC())
	require.NoError(t, err)

	err = tx.WithinTx(ctx, func(ctx context.Context, repos store.Repos) error {
		require.NoError(t, repos.Progress.Create(ctx, p))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = tx.Progress().Get(ctx, userID)
	assert.ErrorIs(t, err, store.ErrProgressNotFound)
}
