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

const itemColumns = `id, user_id, kind, term, definition, category, source, importance_score,
	is_deferred, repetition, interval_days, ease_factor, next_review_at, created_at, updated_at`

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// WithTx returns a store bound to tx.
func (s *PostgresItemStore) WithTx(tx *sql.Tx) *PostgresItemStore {
	return &PostgresItemStore{db: tx, logger: s.logger}
}

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.LearningItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `INSERT INTO learning_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.UserID, string(item.Kind), item.Term, item.Definition, item.Category,
		string(item.Source), item.ImportanceScore, item.IsDeferred, item.Repetition,
		item.Interval, item.EaseFactor, item.NextReviewAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create learning item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("learning_item", "create", "insert failed", MapError(err))
	}

	s.logger.DebugContext(ctx, "learning item created", slog.String("item_id", item.ID.String()))
	return nil
}

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error) {
	query := `SELECT ` + itemColumns + ` FROM learning_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get learning item",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learning_item", "get", "select failed", MapError(err))
	}
	return item, nil
}

// FindByUser implements store.ItemStore.FindByUser
func (s *PostgresItemStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
	order store.ItemOrder,
	limit int,
) ([]*domain.LearningItem, error) {
	where, args := buildItemWhere(userID, filter)
	query := `SELECT ` + itemColumns + ` FROM learning_items WHERE ` + where + ` ORDER BY ` + orderClause(order)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to query learning items",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learning_item", "find", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	items := make([]*domain.LearningItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, store.NewStoreError("learning_item", "find", "scan failed", MapError(err))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learning_item", "find", "row iteration failed", MapError(err))
	}
	return items, nil
}

// CountByUser implements store.ItemStore.CountByUser
func (s *PostgresItemStore) CountByUser(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) (int, error) {
	where, args := buildItemWhere(userID, filter)
	query := `SELECT COUNT(*) FROM learning_items WHERE ` + where

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		s.logger.ErrorContext(ctx, "failed to count learning items",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("learning_item", "count", "query failed", MapError(err))
	}
	return count, nil
}

// ListCategories implements store.ItemStore.ListCategories
func (s *PostgresItemStore) ListCategories(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
) ([]string, error) {
	where, args := buildItemWhere(userID, filter)
	query := `SELECT DISTINCT category FROM learning_items WHERE ` + where +
		` AND category <> '' ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("learning_item", "list_categories", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, store.NewStoreError("learning_item", "list_categories", "scan failed", MapError(err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("learning_item", "list_categories", "row iteration failed", MapError(err))
	}
	return categories, nil
}

// Update implements store.ItemStore.Update
func (s *PostgresItemStore) Update(ctx context.Context, item *domain.LearningItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `UPDATE learning_items SET
		term = $2, definition = $3, category = $4, importance_score = $5, is_deferred = $6,
		repetition = $7, interval_days = $8, ease_factor = $9, next_review_at = $10, updated_at = $11
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		item.ID, item.Term, item.Definition, item.Category, item.ImportanceScore, item.IsDeferred,
		item.Repetition, item.Interval, item.EaseFactor, item.NextReviewAt, item.UpdatedAt,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update learning item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("learning_item", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrItemNotFound)
}

// Delete implements store.ItemStore.Delete
func (s *PostgresItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM learning_items WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete learning item",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("learning_item", "delete", "delete failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrItemNotFound)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.LearningItem, error) {
	var (
		item   domain.LearningItem
		kind   string
		source string
	)
	err := row.Scan(
		&item.ID, &item.UserID, &kind, &item.Term, &item.Definition, &item.Category, &source,
		&item.ImportanceScore, &item.IsDeferred, &item.Repetition, &item.Interval, &item.EaseFactor,
		&item.NextReviewAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Kind = domain.ItemKind(kind)
	item.Source = domain.ItemSource(source)
	return &item, nil
}
