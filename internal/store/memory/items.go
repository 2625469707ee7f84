package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

type itemRepo struct {
	s    *Store
	lock bool
}

var _ store.ItemStore = (*itemRepo)(nil)

func (r *itemRepo) acquire() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *itemRepo) Create(ctx context.Context, item *domain.LearningItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	defer r.acquire()()

	if _, exists := r.s.items[item.ID]; exists {
		return store.ErrDuplicate
	}
	r.s.items[item.ID] = item.Clone()
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.acquire()()

	item, ok := r.s.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return item.Clone(), nil
}

func (r *itemRepo) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
	order store.ItemOrder,
	limit int,
) ([]*domain.LearningItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.acquire()()

	found := r.matching(userID, filter)
	sortItems(found, order)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return lo.Map(found, func(i *domain.LearningItem, _ int) *domain.LearningItem { return i.Clone() }), nil
}

func (r *itemRepo) CountByUser(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer r.acquire()()

	return len(r.matching(userID, filter)), nil
}

func (r *itemRepo) ListCategories(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.acquire()()

	categories := lo.Uniq(lo.FilterMap(r.matching(userID, filter), func(i *domain.LearningItem, _ int) (string, bool) {
		return i.Category, i.Category != ""
	}))
	slices.Sort(categories)
	return categories, nil
}

func (r *itemRepo) Update(ctx context.Context, item *domain.LearningItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	defer r.acquire()()

	if _, ok := r.s.items[item.ID]; !ok {
		return store.ErrItemNotFound
	}
	r.s.items[item.ID] = item.Clone()
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.acquire()()

	if _, ok := r.s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

// matching returns the live (uncloned) items of userID passing filter.
func (r *itemRepo) matching(userID uuid.UUID, filter store.ItemFilter) []*domain.LearningItem {
	out := make([]*domain.LearningItem, 0)
	for _, item := range r.s.items {
		if item.UserID == userID && filter.Matches(item) {
			out = append(out, item)
		}
	}
	// map iteration is random; fall back to ID order for determinism
	slices.SortFunc(out, func(a, b *domain.LearningItem) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

func sortItems(items []*domain.LearningItem, order store.ItemOrder) {
	switch order {
	case store.OrderNextReviewAsc:
		slices.SortStableFunc(items, func(a, b *domain.LearningItem) int {
			return a.NextReviewAt.Compare(b.NextReviewAt)
		})
	case store.OrderCreatedDesc:
		slices.SortStableFunc(items, func(a, b *domain.LearningItem) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
