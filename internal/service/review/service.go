// Package review records the outcome of a single item review: it reschedules the
// item, awards points and, for vocabulary, credits the daily goal and streak.
package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/domain/streak"
)

// Service records review outcomes.
type Service interface {
	// RecordReviewOutcome applies a 0-5 quality rating to a vocabulary item.
	//
	// Within one transaction it:
	// 1. Locks the learner's progress and loads the item
	// 2. Verifies the item belongs to the learner
	// 3. Reschedules the item with the SM-2 scheduler
	// 4. Awards review points
	// 5. Credits the daily goal and streak once enough items were learned today
	//
	// Returns:
	//   - ErrWrongKind when the item is not a vocabulary item
	//   - an error wrapping domain.ErrNotFound when the item or learner does not exist
	//   - an error wrapping domain.ErrUnauthorized when the item is not owned by the learner
	//   - an error wrapping domain.ErrValidation when quality is outside 0-5
	//   - an error wrapping domain.ErrDataUnavailable when storage fails
	RecordReviewOutcome(
		ctx context.Context,
		userID uuid.UUID,
		itemID uuid.UUID,
		quality srs.Quality,
	) (*Outcome, error)

	// RecordGrammarReview applies a 0-3 grade to a grammar item. It schedules the
	// item and awards points like a vocabulary review but never touches the daily
	// goal or the streak.
	RecordGrammarReview(
		ctx context.Context,
		userID uuid.UUID,
		itemID uuid.UUID,
		grade srs.GrammarGrade,
	) (*Outcome, error)
}

// Outcome is the state written by a review.
type Outcome struct {
	Item     *domain.LearningItem `json:"item"`
	Progress *domain.UserProgress `json:"progress"`
	// PointsAwarded includes the goal bonus when the goal was credited.
	PointsAwarded int           `json:"points_awarded"`
	Credit        streak.Credit `json:"streak_credit"`
}

// GoalMet reports whether this review completed today's goal.
func (o *Outcome) GoalMet() bool {
	return o.Credit != streak.CreditNone
}

// ErrWrongKind indicates a review endpoint was used with an item of the other kind.
var ErrWrongKind = fmt.Errorf("%w: review does not match item kind", domain.ErrValidation)

// ServiceError wraps errors from the review service with the failed operation.
// It unwraps to the cause so callers can still use errors.Is with domain sentinels.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_review", "record_grammar_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordReviewError returns a new ServiceError for the record_review operation.
func NewRecordReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_review",
		Message:   message,
		Err:       err,
	}
}

// NewRecordGrammarReviewError returns a new ServiceError for the record_grammar_review operation.
func NewRecordGrammarReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_grammar_review",
		Message:   message,
		Err:       err,
	}
}
