package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/samber/lo"
)

// DefaultDeferBelowImportance is the importance under which test-sourced items go
// to the inbox instead of the learning pool.
const DefaultDeferBelowImportance = 2

// CaptureRequest carries the fields of a newly captured item.
type CaptureRequest struct {
	Kind            domain.ItemKind
	Term            string
	Definition      string
	Category        string
	Source          domain.ItemSource
	ImportanceScore int
}

// ItemService manages the lifecycle of a learner's items outside of reviews.
type ItemService interface {
	// CaptureItem creates a never-reviewed item that is due immediately.
	// Low-importance test items are deferred to the inbox.
	CaptureItem(ctx context.Context, userID uuid.UUID, req CaptureRequest) (*domain.LearningItem, error)

	// ListInbox returns the learner's deferred items, newest first.
	ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.LearningItem, error)

	// PromoteItem moves a deferred item into the learning pool.
	PromoteItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.LearningItem, error)

	// DeleteItem removes one of the learner's items.
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
}

// itemServiceImpl implements the ItemService interface
type itemServiceImpl struct {
	items      store.ItemStore
	progress   store.ProgressStore
	tx         store.Transactor
	scheduler  srs.Service
	deferBelow int
	opts       options
	logger     *slog.Logger
}

// Verify interface compliance at compile time
var _ ItemService = (*itemServiceImpl)(nil)

// NewItemService creates a new ItemService.
func NewItemService(
	repos store.Repos,
	tx store.Transactor,
	scheduler srs.Service,
	deferBelowImportance int,
	logger *slog.Logger,
	opts ...Option,
) ItemService {
	if repos.Items == nil || repos.Progress == nil {
		panic("repos cannot be nil")
	}
	if tx == nil {
		panic("tx cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &itemServiceImpl{
		items:      repos.Items,
		progress:   repos.Progress,
		tx:         tx,
		scheduler:  scheduler,
		deferBelow: deferBelowImportance,
		opts:       newOptions(opts),
		logger:     logger.With(slog.String("component", "item_service")),
	}
}

// CaptureItem implements ItemService.CaptureItem
func (s *itemServiceImpl) CaptureItem(
	ctx context.Context,
	userID uuid.UUID,
	req CaptureRequest,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// the learner must exist before items can reference it
	if _, err := s.progress.Get(ctx, userID); err != nil {
		return nil, NewServiceError("item", "capture", ClassifyStoreError(err))
	}

	now := s.opts.clock()
	item, err := domain.NewLearningItem(domain.NewItemParams{
		UserID:          userID,
		Kind:            req.Kind,
		Term:            req.Term,
		Definition:      req.Definition,
		Category:        req.Category,
		Source:          req.Source,
		ImportanceScore: req.ImportanceScore,
		EaseFactor:      s.scheduler.InitialEaseFactor(req.Kind),
		Deferred:        req.Source == domain.ItemSourceTest && req.ImportanceScore < s.deferBelow,
	}, now)
	if err != nil {
		log.Debug("rejecting invalid capture", slog.String("error", err.Error()))
		return nil, NewServiceError("item", "capture", err)
	}

	if err := s.items.Create(ctx, item); err != nil {
		log.Error("failed to store captured item",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("item", "capture", ClassifyStoreError(err))
	}

	log.Info("item captured",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("source", string(item.Source)),
		slog.Bool("deferred", item.IsDeferred))
	return item, nil
}

// ListInbox implements ItemService.ListInbox
func (s *itemServiceImpl) ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.LearningItem, error) {
	items, err := s.items.FindByUser(ctx, userID, store.ItemFilter{
		Deferred: lo.ToPtr(true),
	}, store.OrderCreatedDesc, 0)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list inbox",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("item", "list_inbox", ClassifyStoreError(err))
	}
	return items, nil
}

// PromoteItem implements ItemService.PromoteItem
func (s *itemServiceImpl) PromoteItem(
	ctx context.Context,
	userID, itemID uuid.UUID,
) (*domain.LearningItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.opts.clock()

	var promoted *domain.LearningItem
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repos) error {
		item, err := s.ownedItem(ctx, repos.Items, userID, itemID)
		if err != nil {
			return err
		}
		if !item.IsDeferred {
			promoted = item
			return nil
		}

		item.IsDeferred = false
		item.UpdatedAt = now
		if err := repos.Items.Update(ctx, item); err != nil {
			return err
		}
		promoted = item
		return nil
	})
	if err != nil {
		return nil, NewServiceError("item", "promote", ClassifyStoreError(err))
	}

	log.Debug("item promoted",
		slog.String("item_id", itemID.String()),
		slog.String("user_id", userID.String()))
	return promoted, nil
}

// DeleteItem implements ItemService.DeleteItem
func (s *itemServiceImpl) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repos) error {
		if _, err := s.ownedItem(ctx, repos.Items, userID, itemID); err != nil {
			return err
		}
		return repos.Items.Delete(ctx, itemID)
	})
	if err != nil {
		return NewServiceError("item", "delete", ClassifyStoreError(err))
	}

	log.Info("item deleted",
		slog.String("item_id", itemID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ownedItem loads an item and checks it belongs to userID.
func (s *itemServiceImpl) ownedItem(
	ctx context.Context,
	items store.ItemStore,
	userID, itemID uuid.UUID,
) (*domain.LearningItem, error) {
	item, err := items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		logger.FromContextOrDefault(ctx, s.logger).Warn("item ownership check failed",
			slog.String("item_id", itemID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrNotOwned
	}
	return item, nil
}
