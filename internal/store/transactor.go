package store

import (
	"context"
)

// Repos groups the stores bound to a single transaction.
type Repos struct {
	Items    ItemStore
	Progress ProgressStore
}

// Transactor runs fn with stores bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise, so item and progress
// writes made through repos succeed or fail together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
