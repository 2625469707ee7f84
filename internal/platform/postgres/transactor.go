package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/lexis-api/internal/store"
)

// Transactor runs callbacks in a database transaction with tx-bound stores.
type Transactor struct {
	db       *sql.DB
	items    *PostgresItemStore
	progress *PostgresProgressStore
}

// Ensure Transactor implements store.Transactor interface
var _ store.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor over db.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	return &Transactor{
		db:       db,
		items:    NewPostgresItemStore(db, logger),
		progress: NewPostgresProgressStore(db, logger),
	}
}

// Items returns the non-transactional item store.
func (t *Transactor) Items() *PostgresItemStore { return t.items }

// Progress returns the non-transactional progress store.
func (t *Transactor) Progress() *PostgresProgressStore { return t.progress }

// WithinTx implements store.Transactor.WithinTx
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repos) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Repos{
			Items:    t.items.WithTx(tx),
			Progress: t.progress.WithTx(tx),
		})
	})
}
