package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// ProgressStore defines the interface for learner progress persistence.
type ProgressStore interface {
	// Create saves the progress record of a new learner.
	// Returns ErrProgressExists if the learner already has one.
	Create(ctx context.Context, progress *domain.UserProgress) error

	// Get retrieves the learner's progress without locking.
	// Returns ErrProgressNotFound if the learner does not exist.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)

	// GetForUpdate retrieves the learner's progress and locks it until the
	// surrounding transaction ends. Use it for read-modify-write inside WithinTx.
	// Returns ErrProgressNotFound if the learner does not exist.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)

	// Update writes the whole aggregate back.
	// Returns ErrProgressNotFound if the learner does not exist.
	Update(ctx context.Context, progress *domain.UserProgress) error
}
