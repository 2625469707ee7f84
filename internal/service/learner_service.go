package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Daily goal bounds accepted by UpdateDailyGoal.
const (
	MinDailyGoal = 1
	MaxDailyGoal = 1000
)

// LearnerSettings are the reward rules applied by LearnerService.
type LearnerSettings struct {
	DefaultDailyGoal int
	StreakFreezeCost int
	MaxStreakFreezes int
}

// DefaultLearnerSettings returns a 20 item goal and freezes at 50 points, at most 2 held.
func DefaultLearnerSettings() LearnerSettings {
	return LearnerSettings{
		DefaultDailyGoal: domain.DefaultDailyNewItemGoal,
		StreakFreezeCost: 50,
		MaxStreakFreezes: 2,
	}
}

// DashboardSnapshot is the read-only summary shown on the learner's home screen.
type DashboardSnapshot struct {
	LearnedToday int      `json:"learned_today"`
	DailyGoal    int      `json:"daily_goal"`
	GoalMetToday bool     `json:"goal_met_today"`
	DueCount     int      `json:"due_count"`
	TotalCount   int      `json:"total_count"`
	Categories   []string `json:"categories"`
	Points       int      `json:"points"`
	StreakCount  int      `json:"streak_count"`
	StreakFreeze int      `json:"streak_freeze"`
	StreakFrozen bool     `json:"streak_frozen"`
}

// LearnerService manages the learner's progress aggregate outside of reviews.
type LearnerService interface {
	// CreateLearner creates the progress record for userID. Calling it for an
	// existing learner returns the stored record with created == false.
	CreateLearner(ctx context.Context, userID uuid.UUID) (progress *domain.UserProgress, created bool, err error)

	// UpdateDailyGoal sets the number of new items to learn per day.
	UpdateDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*domain.UserProgress, error)

	// BuyStreakFreeze spends points on a token that covers one missed day.
	BuyStreakFreeze(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)

	// GetDashboardSnapshot summarizes today's vocabulary progress. It never writes.
	GetDashboardSnapshot(ctx context.Context, userID uuid.UUID) (*DashboardSnapshot, error)
}

// learnerServiceImpl implements the LearnerService interface
type learnerServiceImpl struct {
	items    store.ItemStore
	progress store.ProgressStore
	tx       store.Transactor
	tracker  *streak.Tracker
	settings LearnerSettings
	opts     options
	logger   *slog.Logger
}

// Verify interface compliance at compile time
var _ LearnerService = (*learnerServiceImpl)(nil)

// NewLearnerService creates a new LearnerService.
func NewLearnerService(
	repos store.Repos,
	tx store.Transactor,
	tracker *streak.Tracker,
	settings LearnerSettings,
	logger *slog.Logger,
	opts ...Option,
) LearnerService {
	if repos.Items == nil || repos.Progress == nil {
		panic("repos cannot be nil")
	}
	if tx == nil {
		panic("tx cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &learnerServiceImpl{
		items:    repos.Items,
		progress: repos.Progress,
		tx:       tx,
		tracker:  tracker,
		settings: settings,
		opts:     newOptions(opts),
		logger:   logger.With(slog.String("component", "learner_service")),
	}
}

// CreateLearner implements LearnerService.CreateLearner
func (s *learnerServiceImpl) CreateLearner(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgress, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	existing, err := s.progress.Get(ctx, userID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, store.ErrProgressNotFound):
		log.Error("failed to look up learner", slog.String("error", err.Error()))
		return nil, false, NewServiceError("learner", "create", ClassifyStoreError(err))
	}

	progress, err := domain.NewUserProgress(userID, s.settings.DefaultDailyGoal, s.opts.clock())
	if err != nil {
		return nil, false, NewServiceError("learner", "create", err)
	}

	if err := s.progress.Create(ctx, progress); err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, store.ErrProgressExists) {
			existing, getErr := s.progress.Get(ctx, userID)
			if getErr == nil {
				return existing, false, nil
			}
			err = getErr
		}
		log.Error("failed to create learner", slog.String("error", err.Error()))
		return nil, false, NewServiceError("learner", "create", ClassifyStoreError(err))
	}

	log.Info("learner created", slog.Int("daily_goal", progress.DailyNewItemGoal))
	return progress, true, nil
}

// UpdateDailyGoal implements LearnerService.UpdateDailyGoal
func (s *learnerServiceImpl) UpdateDailyGoal(
	ctx context.Context,
	userID uuid.UUID,
	goal int,
) (*domain.UserProgress, error) {
	if goal < MinDailyGoal || goal > MaxDailyGoal {
		return nil, NewServiceError("learner", "update_daily_goal", ErrInvalidGoal)
	}

	updated, err := s.modify(ctx, userID, func(p *domain.UserProgress) error {
		p.DailyNewItemGoal = goal
		return nil
	})
	if err != nil {
		return nil, NewServiceError("learner", "update_daily_goal", err)
	}
	return updated, nil
}

// BuyStreakFreeze implements LearnerService.BuyStreakFreeze
func (s *learnerServiceImpl) BuyStreakFreeze(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	updated, err := s.modify(ctx, userID, func(p *domain.UserProgress) error {
		if p.StreakFreeze >= s.settings.MaxStreakFreezes {
			return ErrFreezeLimit
		}
		if p.Points < s.settings.StreakFreezeCost {
			return ErrInsufficientPoints
		}
		p.Points -= s.settings.StreakFreezeCost
		p.StreakFreeze++
		return nil
	})
	if err != nil {
		return nil, NewServiceError("learner", "buy_streak_freeze", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("streak freeze bought",
		slog.String("user_id", userID.String()),
		slog.Int("streak_freeze", updated.StreakFreeze),
		slog.Int("points", updated.Points))
	return updated, nil
}

// modify runs a locked read-modify-write of the learner's progress.
func (s *learnerServiceImpl) modify(
	ctx context.Context,
	userID uuid.UUID,
	apply func(p *domain.UserProgress) error,
) (*domain.UserProgress, error) {
	now := s.opts.clock()

	var updated *domain.UserProgress
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repos) error {
		current, err := repos.Progress.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		next := current.Clone()
		if err := apply(next); err != nil {
			return err
		}
		next.UpdatedAt = now

		if err := repos.Progress.Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, ClassifyStoreError(err)
	}
	return updated, nil
}

// GetDashboardSnapshot implements LearnerService.GetDashboardSnapshot
func (s *learnerServiceImpl) GetDashboardSnapshot(
	ctx context.Context,
	userID uuid.UUID,
) (*DashboardSnapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.opts.clock()

	progress, err := s.progress.Get(ctx, userID)
	if err != nil {
		return nil, NewServiceError("learner", "dashboard", ClassifyStoreError(err))
	}

	vocabulary := lo.ToPtr(domain.ItemKindVocabulary)
	snapshot := &DashboardSnapshot{
		DailyGoal:    progress.DailyNewItemGoal,
		GoalMetToday: s.tracker.GoalMetToday(progress, now),
		Points:       progress.Points,
		StreakCount:  progress.StreakCount,
		StreakFreeze: progress.StreakFreeze,
		StreakFrozen: s.tracker.IsFrozen(progress, now),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.items.CountByUser(gctx, userID, learnedTodayFilter(domain.ItemKindVocabulary, s.tracker, now))
		snapshot.LearnedToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.items.CountByUser(gctx, userID, store.ItemFilter{
			Kind:          vocabulary,
			Deferred:      lo.ToPtr(false),
			MinInterval:   lo.ToPtr(1),
			DueAtOrBefore: lo.ToPtr(now),
		})
		snapshot.DueCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.items.CountByUser(gctx, userID, store.ItemFilter{Kind: vocabulary})
		snapshot.TotalCount = n
		return err
	})
	g.Go(func() error {
		categories, err := s.items.ListCategories(gctx, userID, store.ItemFilter{Kind: vocabulary})
		snapshot.Categories = categories
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to build dashboard",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("learner", "dashboard", ClassifyStoreError(err))
	}

	if snapshot.Categories == nil {
		snapshot.Categories = []string{}
	}
	return snapshot, nil
}
