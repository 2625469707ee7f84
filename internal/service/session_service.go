package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/session"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

// Importance at or above which test-sourced items jump ahead of collection items.
const priorityImportance = 3

// SessionService builds study session queues.
type SessionService interface {
	// BuildSessionQueue returns the learner's due reviews of kind interleaved with
	// up to the day's remaining quota of new items. The queue is a snapshot taken
	// at call time.
	BuildSessionQueue(ctx context.Context, userID uuid.UUID, kind domain.ItemKind) (*session.Queue, error)
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	items         store.ItemStore
	progress      store.ProgressStore
	tracker       *streak.Tracker
	reviewsPerNew int
	opts          options
	logger        *slog.Logger
}

// Verify interface compliance at compile time
var _ SessionService = (*sessionServiceImpl)(nil)

// NewSessionService creates a new SessionService. A reviewsPerNew below 1
// falls back to session.DefaultReviewsPerNew.
func NewSessionService(
	repos store.Repos,
	tracker *streak.Tracker,
	reviewsPerNew int,
	logger *slog.Logger,
	opts ...Option,
) SessionService {
	if repos.Items == nil || repos.Progress == nil {
		panic("repos cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	if reviewsPerNew < 1 {
		reviewsPerNew = session.DefaultReviewsPerNew
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &sessionServiceImpl{
		items:         repos.Items,
		progress:      repos.Progress,
		tracker:       tracker,
		reviewsPerNew: reviewsPerNew,
		opts:          newOptions(opts),
		logger:        logger.With(slog.String("component", "session_service")),
	}
}

// BuildSessionQueue implements SessionService.BuildSessionQueue
func (s *sessionServiceImpl) BuildSessionQueue(
	ctx context.Context,
	userID uuid.UUID,
	kind domain.ItemKind,
) (*session.Queue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)),
	)

	if !kind.Valid() {
		return nil, NewServiceError("session", "build_queue",
			fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrItemKindInvalid, kind))
	}

	due, fresh, err := s.pools(ctx, userID, kind)
	if err != nil {
		log.Error("failed to select session items", slog.String("error", err.Error()))
		return nil, NewServiceError("session", "build_queue", ClassifyStoreError(err))
	}

	log.Debug("session queue built",
		slog.Int("due", len(due)),
		slog.Int("new", len(fresh)))
	return session.NewQueue(session.Interleave(due, fresh, s.reviewsPerNew)), nil
}

// pools selects the due reviews and the new items for one session.
func (s *sessionServiceImpl) pools(
	ctx context.Context,
	userID uuid.UUID,
	kind domain.ItemKind,
) (due, fresh []*domain.LearningItem, err error) {
	now := s.opts.clock()

	progress, err := s.progress.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	due, err = s.items.FindByUser(ctx, userID, store.ItemFilter{
		Kind:          lo.ToPtr(kind),
		Deferred:      lo.ToPtr(false),
		MinInterval:   lo.ToPtr(1),
		DueAtOrBefore: lo.ToPtr(now),
	}, store.OrderNextReviewAsc, 0)
	if err != nil {
		return nil, nil, err
	}

	learned, err := s.items.CountByUser(ctx, userID, learnedTodayFilter(kind, s.tracker, now))
	if err != nil {
		return nil, nil, err
	}

	quota := max(0, progress.DailyNewItemGoal-learned)
	if quota == 0 {
		return due, nil, nil
	}

	// interval 0 keeps lapsed items, which are already in the due pool, out of here
	newItems := func(sources ...domain.ItemSource) store.ItemFilter {
		return store.ItemFilter{
			Kind:          lo.ToPtr(kind),
			Sources:       sources,
			Deferred:      lo.ToPtr(false),
			MaxRepetition: lo.ToPtr(0),
			MaxInterval:   lo.ToPtr(0),
			DueAtOrBefore: lo.ToPtr(now),
		}
	}

	priority := newItems(domain.ItemSourceTest)
	priority.MinImportance = lo.ToPtr(priorityImportance)
	fresh, err = s.items.FindByUser(ctx, userID, priority, store.OrderCreatedDesc, quota)
	if err != nil {
		return nil, nil, err
	}

	if remaining := quota - len(fresh); remaining > 0 {
		collected, err := s.items.FindByUser(ctx, userID,
			newItems(domain.ItemSourceCollection), store.OrderCreatedDesc, remaining)
		if err != nil {
			return nil, nil, err
		}
		fresh = append(fresh, collected...)
	}

	return due, fresh, nil
}
