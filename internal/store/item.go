package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/samber/lo"
)

// ItemOrder selects the ordering of FindByUser results.
type ItemOrder int

// Supported orderings
const (
	// OrderNone leaves the order to the store.
	OrderNone ItemOrder = iota
	// OrderNextReviewAsc returns the longest-overdue items first.
	OrderNextReviewAsc
	// OrderCreatedDesc returns the newest items first.
	OrderCreatedDesc
)

// ItemFilter is a conjunction of optional predicates over a learner's items.
// A nil field does not constrain the result. Adapters translate it to their own
// query language; Matches evaluates it in-process.
type ItemFilter struct {
	Kind     *domain.ItemKind
	Sources  []domain.ItemSource
	Deferred *bool

	// NextReviewAt <= DueAtOrBefore
	DueAtOrBefore *time.Time
	// NextReviewAt > ScheduledAfter
	ScheduledAfter *time.Time
	// UpdatedAt >= UpdatedSince
	UpdatedSince *time.Time
	// CreatedAt < CreatedBefore
	CreatedBefore *time.Time

	MinImportance *int
	MinRepetition *int
	MaxRepetition *int
	MinInterval   *int
	MaxInterval   *int

	// Repetition >= 1 OR NextReviewAt > RecalledOrScheduledAfter
	RecalledOrScheduledAfter *time.Time
}

// Matches reports whether item satisfies every set predicate.
func (f ItemFilter) Matches(item *domain.LearningItem) bool {
	switch {
	case f.Kind != nil && item.Kind != *f.Kind:
		return false
	case len(f.Sources) > 0 && !lo.Contains(f.Sources, item.Source):
		return false
	case f.Deferred != nil && item.IsDeferred != *f.Deferred:
		return false
	case f.DueAtOrBefore != nil && item.NextReviewAt.After(*f.DueAtOrBefore):
		return false
	case f.ScheduledAfter != nil && !item.NextReviewAt.After(*f.ScheduledAfter):
		return false
	case f.UpdatedSince != nil && item.UpdatedAt.Before(*f.UpdatedSince):
		return false
	case f.CreatedBefore != nil && !item.CreatedAt.Before(*f.CreatedBefore):
		return false
	case f.MinImportance != nil && item.ImportanceScore < *f.MinImportance:
		return false
	case f.MinRepetition != nil && item.Repetition < *f.MinRepetition:
		return false
	case f.MaxRepetition != nil && item.Repetition > *f.MaxRepetition:
		return false
	case f.MinInterval != nil && item.Interval < *f.MinInterval:
		return false
	case f.MaxInterval != nil && item.Interval > *f.MaxInterval:
		return false
	case f.RecalledOrScheduledAfter != nil &&
		item.Repetition < 1 && !item.NextReviewAt.After(*f.RecalledOrScheduledAfter):
		return false
	}
	return true
}

// ItemStore defines the interface for learning item persistence.
type ItemStore interface {
	// Create saves a new item. The item is validated first.
	// Returns ErrDuplicate if an item with the same ID exists.
	Create(ctx context.Context, item *domain.LearningItem) error

	// GetByID retrieves an item by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LearningItem, error)

	// FindByUser returns the learner's items matching filter in the given order.
	// A limit <= 0 means no limit.
	FindByUser(
		ctx context.Context,
		userID uuid.UUID,
		filter ItemFilter,
		order ItemOrder,
		limit int,
	) ([]*domain.LearningItem, error)

	// CountByUser counts the learner's items matching filter.
	CountByUser(ctx context.Context, userID uuid.UUID, filter ItemFilter) (int, error)

	// ListCategories returns the distinct non-empty categories of items matching
	// filter, sorted alphabetically.
	ListCategories(ctx context.Context, userID uuid.UUID, filter ItemFilter) ([]string, error)

	// Update writes every mutable field of an existing item.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.LearningItem) error

	// Delete removes an item.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
