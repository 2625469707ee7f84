package srs

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/phrazzld/lexis-api/internal/domain"
)

// Common errors. Both wrap domain.ErrValidation when returned.
var (
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
	ErrInvalidState   = errors.New("invalid scheduling state")
)

// State is the scheduling part of a learning item.
type State struct {
	Interval   int
	Repetition int
	EaseFactor float64
}

// StateOf extracts the scheduling state of an item.
func StateOf(item *domain.LearningItem) State {
	return State{
		Interval:   item.Interval,
		Repetition: item.Repetition,
		EaseFactor: item.EaseFactor,
	}
}

// Result is the outcome of a scheduling step.
type Result struct {
	State
	NextReviewAt time.Time
}

// ApplyTo returns a copy of item carrying the new schedule, stamped as updated at now.
func (r Result) ApplyTo(item *domain.LearningItem, now time.Time) *domain.LearningItem {
	next := item.Clone()
	next.Interval = r.Interval
	next.Repetition = r.Repetition
	next.EaseFactor = r.EaseFactor
	next.NextReviewAt = r.NextReviewAt
	next.UpdatedAt = now
	return next
}

// RandSource supplies the randomness used for interval fuzz.
// *math/rand.Rand satisfies it; tests pass a seeded generator.
type RandSource interface {
	Intn(n int) int
}

// Service defines the interface for scheduling operations
type Service interface {
	// Schedule computes the next state for a review rated with quality at now.
	Schedule(state State, quality Quality, now time.Time) (Result, error)

	// InitialEaseFactor returns the ease factor a new item of kind starts with.
	InitialEaseFactor(kind domain.ItemKind) float64

	// Params exposes the parameters the service runs with.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
	rng    RandSource
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return NewServiceWithParams(NewDefaultParams(), nil)
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
// A nil rng falls back to the shared math/rand source.
func NewServiceWithParams(params *Params, rng RandSource) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &defaultService{
		params: params,
		rng:    rng,
	}
}

// Schedule implements Service.Schedule
func (s *defaultService) Schedule(state State, quality Quality, now time.Time) (Result, error) {
	if !quality.Valid() {
		return Result{}, fmt.Errorf("%w: %w: got %d", domain.ErrValidation, ErrInvalidQuality, quality)
	}
	if err := validateState(state, s.params); err != nil {
		return Result{}, err
	}

	return calculateNextState(state, quality, now, s.params, s.rng), nil
}

// InitialEaseFactor implements Service.InitialEaseFactor
func (s *defaultService) InitialEaseFactor(kind domain.ItemKind) float64 {
	return s.params.InitialEaseFactor(kind)
}

// Params implements Service.Params
func (s *defaultService) Params() *Params {
	return s.params
}

func validateState(state State, params *Params) error {
	switch {
	case state.Interval < 0:
		return fmt.Errorf("%w: %w: negative interval %d", domain.ErrValidation, ErrInvalidState, state.Interval)
	case state.Repetition < 0:
		return fmt.Errorf("%w: %w: negative repetition %d", domain.ErrValidation, ErrInvalidState, state.Repetition)
	case state.EaseFactor < params.MinEaseFactor:
		return fmt.Errorf("%w: %w: ease factor %.2f below %.2f",
			domain.ErrValidation, ErrInvalidState, state.EaseFactor, params.MinEaseFactor)
	}
	return nil
}

// globalRand uses the package-level math/rand source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }
