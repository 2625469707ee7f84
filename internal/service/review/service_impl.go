package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Option configures the review service.
type Option func(*serviceImpl)

// WithClock replaces time.Now as the source of the review time.
func WithClock(clock func() time.Time) Option {
	return func(s *serviceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	tx        store.Transactor
	scheduler srs.Service
	tracker   *streak.Tracker
	clock     func() time.Time
	logger    *slog.Logger
}

// NewService creates a new review Service.
func NewService(
	tx store.Transactor,
	scheduler srs.Service,
	tracker *streak.Tracker,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if tx == nil {
		panic("tx cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		tx:        tx,
		scheduler: scheduler,
		tracker:   tracker,
		clock:     time.Now,
		logger:    logger.With(slog.String("component", "review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordReviewOutcome implements Service.RecordReviewOutcome.
func (s *serviceImpl) RecordReviewOutcome(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	quality srs.Quality,
) (*Outcome, error) {
	outcome, err := s.record(ctx, userID, itemID, domain.ItemKindVocabulary, quality)
	if err != nil {
		return nil, NewRecordReviewError("failed to record review", err)
	}
	return outcome, nil
}

// RecordGrammarReview implements Service.RecordGrammarReview.
func (s *serviceImpl) RecordGrammarReview(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	grade srs.GrammarGrade,
) (*Outcome, error) {
	quality, err := srs.QualityFromGrammarGrade(grade)
	if err != nil {
		return nil, NewRecordGrammarReviewError("invalid grade", err)
	}

	outcome, err := s.record(ctx, userID, itemID, domain.ItemKindGrammar, quality)
	if err != nil {
		return nil, NewRecordGrammarReviewError("failed to record grammar review", err)
	}
	return outcome, nil
}

// record runs one review inside a transaction. The progress row is locked first
// so concurrent reviews by the same learner serialize on it.
func (s *serviceImpl) record(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	kind domain.ItemKind,
	quality srs.Quality,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.String("kind", string(kind)),
	)

	if !quality.Valid() {
		log.Debug("rejecting out of range quality", slog.Int("quality", int(quality)))
		return nil, fmt.Errorf("%w: %w: got %d", domain.ErrValidation, srs.ErrInvalidQuality, quality)
	}

	now := s.clock()
	var outcome *Outcome

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repos) error {
		progress, err := repos.Progress.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		item, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		if item.UserID != userID {
			log.Warn("item ownership check failed",
				slog.String("owner_id", item.UserID.String()))
			return service.ErrNotOwned
		}
		if item.Kind != kind {
			return ErrWrongKind
		}

		result, err := s.scheduler.Schedule(srs.StateOf(item), quality, now)
		if err != nil {
			return err
		}

		updated := result.ApplyTo(item, now)
		if err := repos.Items.Update(ctx, updated); err != nil {
			return err
		}

		next := progress.Clone()
		next.Points += streak.ReviewPoints(int(quality))
		next.UpdatedAt = now

		credit := streak.CreditNone
		if kind == domain.ItemKindVocabulary && !s.tracker.GoalMetToday(next, now) {
			learned, err := repos.Items.CountByUser(ctx, userID, store.ItemFilter{
				Kind:          lo.ToPtr(domain.ItemKindVocabulary),
				MinRepetition: lo.ToPtr(1),
				UpdatedSince:  lo.ToPtr(s.tracker.DayStart(now)),
			})
			if err != nil {
				return err
			}

			if learned >= next.DailyNewItemGoal {
				next, credit = s.tracker.CreditGoal(next, now)
				log.Info("daily goal met",
					slog.Int("learned_today", learned),
					slog.Int("streak_count", next.StreakCount),
					slog.String("credit", string(credit)))
			}
		}

		if err := repos.Progress.Update(ctx, next); err != nil {
			return err
		}

		outcome = &Outcome{
			Item:          updated,
			Progress:      next,
			PointsAwarded: next.Points - progress.Points,
			Credit:        credit,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrUnauthorized) ||
			errors.Is(err, domain.ErrNotFound) {
			log.Debug("review rejected", slog.String("error", err.Error()))
		} else {
			log.Error("review transaction failed", slog.String("error", err.Error()))
		}
		return nil, service.ClassifyStoreError(err)
	}

	log.Debug("review recorded",
		slog.Int("quality", int(quality)),
		slog.Float64("ease_factor", outcome.Item.EaseFactor),
		slog.Int("interval", outcome.Item.Interval),
		slog.Time("next_review_at", outcome.Item.NextReviewAt),
		slog.Int("points_awarded", outcome.PointsAwarded))

	return outcome, nil
}
