package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultDailyNewItemGoal is the goal a learner starts with.
const DefaultDailyNewItemGoal = 20

// Progress validation errors
var (
	ErrProgressUserIDEmpty = errors.New("progress user ID cannot be empty")
	ErrProgressGoal        = errors.New("daily new item goal must be positive")
	ErrProgressNegative    = errors.New("points, streak and freezes must not be negative")
)

// UserProgress is the per-learner aggregate holding the daily goal, reward points
// and streak bookkeeping. It is loaded, transformed and written back as a whole.
type UserProgress struct {
	UserID           uuid.UUID  `json:"user_id"`
	DailyNewItemGoal int        `json:"daily_new_item_goal"`
	Points           int        `json:"points"`
	StreakCount      int        `json:"streak_count"`
	LastGoalMetAt    *time.Time `json:"last_goal_met_at"` // nil when the goal was never met
	StreakFreeze     int        `json:"streak_freeze"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewUserProgress creates the default aggregate for a new account.
func NewUserProgress(userID uuid.UUID, dailyGoal int, now time.Time) (*UserProgress, error) {
	if dailyGoal == 0 {
		dailyGoal = DefaultDailyNewItemGoal
	}
	p := &UserProgress{
		UserID:           userID,
		DailyNewItemGoal: dailyGoal,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the aggregate. Failures wrap ErrValidation.
func (p *UserProgress) Validate() error {
	var err error
	switch {
	case p.UserID == uuid.Nil:
		err = ErrProgressUserIDEmpty
	case p.DailyNewItemGoal <= 0:
		err = ErrProgressGoal
	case p.Points < 0 || p.StreakCount < 0 || p.StreakFreeze < 0:
		err = ErrProgressNegative
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Clone returns a deep copy of the aggregate.
func (p *UserProgress) Clone() *UserProgress {
	c := *p
	if p.LastGoalMetAt != nil {
		t := *p.LastGoalMetAt
		c.LastGoalMetAt = &t
	}
	return &c
}
