package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
)

const progressColumns = `user_id, daily_new_item_goal, points, streak_count, last_goal_met_at,
	streak_freeze, created_at, updated_at`

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) *PostgresProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger}
}

// Create implements store.ProgressStore.Create
func (s *PostgresProgressStore) Create(ctx context.Context, p *domain.UserProgress) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO user_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		p.UserID, p.DailyNewItemGoal, p.Points, p.StreakCount, p.LastGoalMetAt,
		p.StreakFreeze, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrProgressExists
		}
		s.logger.ErrorContext(ctx, "failed to create user progress",
			slog.String("user_id", p.UserID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("user_progress", "create", "insert failed", MapError(err))
	}
	return nil
}

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	return s.get(ctx, userID, false)
}

// GetForUpdate implements store.ProgressStore.GetForUpdate.
// The row stays locked until the surrounding transaction ends.
func (s *PostgresProgressStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	return s.get(ctx, userID, true)
}

func (s *PostgresProgressStore) get(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.UserProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		p         domain.UserProgress
		lastGoal  sql.NullTime
		operation = "get"
	)
	if forUpdate {
		operation = "get_for_update"
	}

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.DailyNewItemGoal, &p.Points, &p.StreakCount, &lastGoal,
		&p.StreakFreeze, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get user progress",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user_progress", operation, "select failed", MapError(err))
	}
	if lastGoal.Valid {
		t := lastGoal.Time
		p.LastGoalMetAt = &t
	}
	return &p, nil
}

// Update implements store.ProgressStore.Update
func (s *PostgresProgressStore) Update(ctx context.Context, p *domain.UserProgress) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `UPDATE user_progress SET
		daily_new_item_goal = $2, points = $3, streak_count = $4, last_goal_met_at = $5,
		streak_freeze = $6, updated_at = $7
		WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query,
		p.UserID, p.DailyNewItemGoal, p.Points, p.StreakCount, p.LastGoalMetAt,
		p.StreakFreeze, p.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update user progress",
			slog.String("user_id", p.UserID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("user_progress", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrProgressNotFound)
}
