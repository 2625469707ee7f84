package service

import (
	"time"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

// Option configures the services in this package.
type Option func(*options)

type options struct {
	clock func() time.Time
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now. Each operation reads the clock once.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// learnedTodayFilter matches items of kind touched since the start of the learning
// day that were either recalled or pushed into the future by a review.
func learnedTodayFilter(kind domain.ItemKind, tracker *streak.Tracker, now time.Time) store.ItemFilter {
	return store.ItemFilter{
		Kind:                     lo.ToPtr(kind),
		UpdatedSince:             lo.ToPtr(tracker.DayStart(now)),
		RecalledOrScheduledAfter: lo.ToPtr(now),
	}
}
