package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
)

// Common service errors. Each wraps a domain sentinel so the API layer can map it
// to a status code with errors.Is.
var (
	// ErrNotOwned indicates an item belongs to a different learner than the caller.
	ErrNotOwned = fmt.Errorf("%w: item is owned by another learner", domain.ErrUnauthorized)

	// ErrInsufficientPoints indicates the learner cannot afford a streak freeze.
	ErrInsufficientPoints = fmt.Errorf("%w: not enough points", domain.ErrValidation)

	// ErrFreezeLimit indicates the learner already holds the maximum number of freezes.
	ErrFreezeLimit = fmt.Errorf("%w: streak freeze limit reached", domain.ErrValidation)

	// ErrInvalidGoal indicates a daily goal outside the accepted range.
	ErrInvalidGoal = fmt.Errorf("%w: daily goal must be between %d and %d",
		domain.ErrValidation, MinDailyGoal, MaxDailyGoal)
)

// ServiceError records which service operation failed. It unwraps to the cause,
// so errors.Is against domain sentinels still works.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}

// ClassifyStoreError leaves errors that already carry a domain sentinel alone,
// treats rejected entities as validation failures and marks everything else as
// ErrDataUnavailable. The original error stays in the chain.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrDataUnavailable):
		return err
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
}
