package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/service/review"
)

// MockReviewService implements review.Service for testing
type MockReviewService struct {
	// Custom behavior functions
	RecordReviewOutcomeFn func(ctx context.Context, userID, itemID uuid.UUID, quality srs.Quality) (*review.Outcome, error)
	RecordGrammarReviewFn func(ctx context.Context, userID, itemID uuid.UUID, grade srs.GrammarGrade) (*review.Outcome, error)

	// Default response values
	Outcome *review.Outcome
	Err     error

	// Call tracking for verification
	Calls struct {
		mu        sync.Mutex
		Count     int
		UserIDs   []uuid.UUID
		ItemIDs   []uuid.UUID
		Qualities []srs.Quality
		Grades    []srs.GrammarGrade
	}
}

var _ review.Service = (*MockReviewService)(nil)

// NewMockReviewService creates a mock configured by opts.
func NewMockReviewService(opts ...MockOption) *MockReviewService {
	m := &MockReviewService{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RecordReviewOutcome implements the review.Service interface
func (m *MockReviewService) RecordReviewOutcome(
	ctx context.Context,
	userID, itemID uuid.UUID,
	quality srs.Quality,
) (*review.Outcome, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.UserIDs = append(m.Calls.UserIDs, userID)
	m.Calls.ItemIDs = append(m.Calls.ItemIDs, itemID)
	m.Calls.Qualities = append(m.Calls.Qualities, quality)
	m.Calls.mu.Unlock()

	if m.RecordReviewOutcomeFn != nil {
		return m.RecordReviewOutcomeFn(ctx, userID, itemID, quality)
	}
	return m.Outcome, m.Err
}

// RecordGrammarReview implements the review.Service interface
func (m *MockReviewService) RecordGrammarReview(
	ctx context.Context,
	userID, itemID uuid.UUID,
	grade srs.GrammarGrade,
) (*review.Outcome, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.UserIDs = append(m.Calls.UserIDs, userID)
	m.Calls.ItemIDs = append(m.Calls.ItemIDs, itemID)
	m.Calls.Grades = append(m.Calls.Grades, grade)
	m.Calls.mu.Unlock()

	if m.RecordGrammarReviewFn != nil {
		return m.RecordGrammarReviewFn(ctx, userID, itemID, grade)
	}
	return m.Outcome, m.Err
}

// CallCount returns the number of review calls recorded so far.
func (m *MockReviewService) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}

// Reset clears the call tracking state
func (m *MockReviewService) Reset() {
	m.Calls.mu.Lock()
	m.Calls.Count = 0
	m.Calls.UserIDs = nil
	m.Calls.ItemIDs = nil
	m.Calls.Qualities = nil
	m.Calls.Grades = nil
	m.Calls.mu.Unlock()
}

// MockOption is a function type that configures a MockReviewService
type MockOption func(*MockReviewService)

// WithOutcome sets the default outcome returned by both methods
func WithOutcome(outcome *review.Outcome) MockOption {
	return func(m *MockReviewService) {
		m.Outcome = outcome
	}
}

// WithError sets the default error returned by both methods
func WithError(err error) MockOption {
	return func(m *MockReviewService) {
		m.Err = err
	}
}
