package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

// whereBuilder accumulates AND-ed predicates with numbered placeholders.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a predicate. expr contains one %d verb for the placeholder index.
func (b *whereBuilder) add(expr string, arg any) {
	b.args = append(b.args, arg)
	b.clauses = append(b.clauses, fmt.Sprintf(expr, len(b.args)))
}

func (b *whereBuilder) sql() string {
	return strings.Join(b.clauses, " AND ")
}

// buildItemWhere translates a filter on userID's items into a WHERE clause body
// and its arguments.
func buildItemWhere(userID uuid.UUID, f store.ItemFilter) (string, []any) {
	b := &whereBuilder{}
	b.add("user_id = $%d", userID)

	if f.Kind != nil {
		b.add("kind = $%d", string(*f.Kind))
	}
	if len(f.Sources) > 0 {
		b.add("source = ANY($%d)", lo.Map(f.Sources, func(s domain.ItemSource, _ int) string { return string(s) }))
	}
	if f.Deferred != nil {
		b.add("is_deferred = $%d", *f.Deferred)
	}
	if f.DueAtOrBefore != nil {
		b.add("next_review_at <= $%d", *f.DueAtOrBefore)
	}
	if f.ScheduledAfter != nil {
		b.add("next_review_at > $%d", *f.ScheduledAfter)
	}
	if f.UpdatedSince != nil {
		b.add("updated_at >= $%d", *f.UpdatedSince)
	}
	if f.CreatedBefore != nil {
		b.add("created_at < $%d", *f.CreatedBefore)
	}
	if f.MinImportance != nil {
		b.add("importance_score >= $%d", *f.MinImportance)
	}
	if f.MinRepetition != nil {
		b.add("repetition >= $%d", *f.MinRepetition)
	}
	if f.MaxRepetition != nil {
		b.add("repetition <= $%d", *f.MaxRepetition)
	}
	if f.MinInterval != nil {
		b.add("interval_days >= $%d", *f.MinInterval)
	}
	if f.MaxInterval != nil {
		b.add("interval_days <= $%d", *f.MaxInterval)
	}
	if f.RecalledOrScheduledAfter != nil {
		b.add("(repetition >= 1 OR next_review_at > $%d)", *f.RecalledOrScheduledAfter)
	}

	return b.sql(), b.args
}

// orderClause returns the ORDER BY body for order. Ties break on id so results
// are stable.
func orderClause(order store.ItemOrder) string {
	switch order {
	case store.OrderNextReviewAsc:
		return "next_review_at ASC, id ASC"
	case store.OrderCreatedDesc:
		return "created_at DESC, id ASC"
	default:
		return "id ASC"
	}
}
