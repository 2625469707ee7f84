// Package streak holds the day-boundary and streak arithmetic for the daily
// new-item goal. Everything here is pure; persistence and locking belong to the
// callers.
package streak

import (
	"time"

	"github.com/phrazzld/lexis-api/internal/domain"
)

// Defaults for the tracker.
const (
	DefaultDayStartHour = 4
	DefaultGoalBonus    = 5
)

// Credit describes how meeting today's goal affected the streak.
type Credit string

// Possible streak credits
const (
	// CreditNone means the goal was already met today; nothing changed.
	CreditNone Credit = "none"
	// CreditContinued means the goal was also met yesterday.
	CreditContinued Credit = "continued"
	// CreditForgiven means one missed day was covered by a freeze token.
	CreditForgiven Credit = "forgiven"
	// CreditReset means the streak started over at 1.
	CreditReset Credit = "reset"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Tracker computes learning-day windows and streak updates.
type Tracker struct {
	// DayStartHour is the local hour a learning day begins.
	DayStartHour int
	// GoalBonus is awarded once per day when the goal is first met.
	GoalBonus int
}

// NewTracker returns a tracker with the default 04:00 boundary and +5 bonus.
func NewTracker() *Tracker {
	return &Tracker{DayStartHour: DefaultDayStartHour, GoalBonus: DefaultGoalBonus}
}

// DayStart returns the start of the learning day containing now, in now's location.
// Times before the boundary hour belong to the previous calendar day.
func (t *Tracker) DayStart(now time.Time) time.Time {
	day := now
	if now.Hour() < t.DayStartHour {
		day = now.AddDate(0, 0, -1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.DayStartHour, 0, 0, 0, now.Location())
}

// dayWindow returns the window daysAgo learning days before the one containing now.
func (t *Tracker) dayWindow(now time.Time, daysAgo int) Window {
	start := t.DayStart(now).AddDate(0, 0, -daysAgo)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Today is the learning day containing now.
func (t *Tracker) Today(now time.Time) Window { return t.dayWindow(now, 0) }

// Yesterday is the learning day before today.
func (t *Tracker) Yesterday(now time.Time) Window { return t.dayWindow(now, 1) }

// TwoDaysPrior is the learning day before yesterday.
func (t *Tracker) TwoDaysPrior(now time.Time) Window { return t.dayWindow(now, 2) }

// GoalMetToday reports whether the goal was already credited during today's window.
func (t *Tracker) GoalMetToday(p *domain.UserProgress, now time.Time) bool {
	return p.LastGoalMetAt != nil && t.Today(now).Contains(*p.LastGoalMetAt)
}

// IsFrozen is the read-time projection used by the dashboard: the learner missed
// yesterday but holds a freeze that will carry the streak once the goal is met.
func (t *Tracker) IsFrozen(p *domain.UserProgress, now time.Time) bool {
	return p.LastGoalMetAt != nil &&
		p.StreakFreeze > 0 &&
		t.TwoDaysPrior(now).Contains(*p.LastGoalMetAt)
}

// ReviewPoints returns the points earned by a single review.
func ReviewPoints(quality int) int {
	if quality >= 4 {
		return 2
	}
	return 1
}

// CreditGoal records that the daily goal was met at now. It returns an updated
// copy of p and the kind of credit applied. A goal already met today yields
// CreditNone and an unchanged copy.
func (t *Tracker) CreditGoal(p *domain.UserProgress, now time.Time) (*domain.UserProgress, Credit) {
	next := p.Clone()
	if t.GoalMetToday(p, now) {
		return next, CreditNone
	}

	var credit Credit
	switch {
	case p.LastGoalMetAt != nil && t.Yesterday(now).Contains(*p.LastGoalMetAt):
		next.StreakCount++
		credit = CreditContinued
	case p.LastGoalMetAt != nil && p.StreakFreeze > 0 && t.TwoDaysPrior(now).Contains(*p.LastGoalMetAt):
		next.StreakCount++
		next.StreakFreeze--
		credit = CreditForgiven
	default:
		next.StreakCount = 1
		credit = CreditReset
	}

	metAt := now
	next.LastGoalMetAt = &metAt
	next.Points += t.GoalBonus
	next.UpdatedAt = now
	return next, credit
}
