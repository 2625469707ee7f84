// Package memory is an in-process implementation of the store interfaces.
// It backs tests and the "memory" database driver. All operations share one
// mutex; WithinTx holds it for the whole callback and restores a snapshot when
// the callback fails.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
)

// Store holds items and progress records in maps keyed by ID.
type Store struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*domain.LearningItem
	progress map[uuid.UUID]*domain.UserProgress
}

// Compile-time check that Store implements store.Transactor.
var _ store.Transactor = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		items:    make(map[uuid.UUID]*domain.LearningItem),
		progress: make(map[uuid.UUID]*domain.UserProgress),
	}
}

// Items returns an ItemStore whose calls each take the store lock.
func (s *Store) Items() store.ItemStore {
	return &itemRepo{s: s, lock: true}
}

// Progress returns a ProgressStore whose calls each take the store lock.
func (s *Store) Progress() store.ProgressStore {
	return &progressRepo{s: s, lock: true}
}

// WithinTx runs fn while holding the store lock. Writes made through repos are
// discarded if fn returns an error or panics.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, progress := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.items, s.progress = items, progress
			panic(p)
		}
		if err != nil {
			s.items, s.progress = items, progress
		}
	}()

	return fn(ctx, store.Repos{
		Items:    &itemRepo{s: s},
		Progress: &progressRepo{s: s},
	})
}

// snapshot deep-copies both maps. Callers hold s.mu.
func (s *Store) snapshot() (map[uuid.UUID]*domain.LearningItem, map[uuid.UUID]*domain.UserProgress) {
	items := make(map[uuid.UUID]*domain.LearningItem, len(s.items))
	for id, item := range s.items {
		items[id] = item.Clone()
	}
	progress := make(map[uuid.UUID]*domain.UserProgress, len(s.progress))
	for id, p := range s.progress {
		progress[id] = p.Clone()
	}
	return items, progress
}
