package session

import (
	"github.com/phrazzld/lexis-api/internal/domain"
)

// Queue is a fixed, forward-only sequence of items for one study session.
// It is a snapshot: later changes in storage are not reflected. A Queue is not
// safe for concurrent use.
type Queue struct {
	items []*domain.LearningItem
	pos   int
}

// NewQueue wraps an already ordered slice. The queue takes ownership of items.
func NewQueue(items []*domain.LearningItem) *Queue {
	return &Queue{items: items}
}

// Next returns the next item, or false once the queue is exhausted.
// Consumed items are never returned again.
func (q *Queue) Next() (*domain.LearningItem, bool) {
	if q.pos >= len(q.items) {
		return nil, false
	}
	item := q.items[q.pos]
	q.items[q.pos] = nil
	q.pos++
	return item, true
}

// Len returns the number of items not yet consumed.
func (q *Queue) Len() int {
	return len(q.items) - q.pos
}

// Done reports whether every item has been consumed.
func (q *Queue) Done() bool {
	return q.Len() == 0
}

// Remaining returns the unconsumed items in order without advancing the queue.
func (q *Queue) Remaining() []*domain.LearningItem {
	out := make([]*domain.LearningItem, q.Len())
	copy(out, q.items[q.pos:])
	return out
}
