package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
)

type progressRepo struct {
	s    *Store
	lock bool
}

var _ store.ProgressStore = (*progressRepo)(nil)

func (r *progressRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *progressRepo) Create(ctx context.Context, p *domain.UserProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	defer r.acquire()()

	if _, exists := r.s.progress[p.UserID]; exists {
		return store.ErrProgressExists
	}
	r.s.progress[p.UserID] = p.Clone()
	return nil
}

func (r *progressRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.acquire()()

	p, ok := r.s.progress[userID]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return p.Clone(), nil
}

// GetForUpdate is Get; the store lock held by WithinTx already serializes writers.
func (r *progressRepo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	return r.Get(ctx, userID)
}

func (r *progressRepo) Update(ctx context.Context, p *domain.UserProgress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	defer r.acquire()()

	if _, ok := r.s.progress[p.UserID]; !ok {
		return store.ErrProgressNotFound
	}
	r.s.progress[p.UserID] = p.Clone()
	return nil
}
