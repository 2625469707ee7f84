package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemKind distinguishes vocabulary words from grammar cards. Both share the same
// scheduling fields.
type ItemKind string

// Supported item kinds
const (
	ItemKindVocabulary ItemKind = "vocabulary"
	ItemKindGrammar    ItemKind = "grammar"
)

// Valid reports whether k is a known kind.
func (k ItemKind) Valid() bool {
	return k == ItemKindVocabulary || k == ItemKindGrammar
}

// ItemSource records how an item entered the system.
type ItemSource string

// Supported item sources. Collection and manual items are entered by the learner,
// test items come from the external capture workflow.
const (
	ItemSourceCollection ItemSource = "collection"
	ItemSourceManual     ItemSource = "manual"
	ItemSourceTest       ItemSource = "test"
)

// Valid reports whether s is a known source.
func (s ItemSource) Valid() bool {
	switch s {
	case ItemSourceCollection, ItemSourceManual, ItemSourceTest:
		return true
	default:
		return false
	}
}

// Importance score bounds for test-sourced items.
const (
	MinImportanceScore = 0
	MaxImportanceScore = 4
)

// Item validation errors
var (
	ErrItemIDEmpty          = errors.New("item ID cannot be empty")
	ErrItemUserIDEmpty      = errors.New("item user ID cannot be empty")
	ErrItemTermEmpty        = errors.New("item term cannot be empty")
	ErrItemKindInvalid      = errors.New("invalid item kind")
	ErrItemSourceInvalid    = errors.New("invalid item source")
	ErrItemImportance       = errors.New("importance score must be between 0 and 4")
	ErrItemNegativeSchedule = errors.New("interval and repetition must not be negative")
	ErrItemEaseFactor       = errors.New("ease factor must be positive")
)

// LearningItem is a vocabulary word or grammar card together with its
// spaced-repetition state.
//
// repetition == 0 && interval == 0 means the item was never recalled (new).
// repetition == 0 && interval > 0 means the item lapsed and is relearning.
// repetition >= 1 means the item is in an active recall streak.
type LearningItem struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Kind            ItemKind   `json:"kind"`
	Term            string     `json:"term"`
	Definition      string     `json:"definition"`
	Category        string     `json:"category"`
	Source          ItemSource `json:"source"`
	ImportanceScore int        `json:"importance_score"`
	IsDeferred      bool       `json:"is_deferred"`
	Repetition      int        `json:"repetition"`
	Interval        int        `json:"interval"` // days
	EaseFactor      float64    `json:"ease_factor"`
	NextReviewAt    time.Time  `json:"next_review_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewItemParams carries the learner-supplied fields of a new item.
type NewItemParams struct {
	UserID          uuid.UUID
	Kind            ItemKind
	Term            string
	Definition      string
	Category        string
	Source          ItemSource
	ImportanceScore int
	EaseFactor      float64
	Deferred        bool
}

// NewLearningItem creates a never-reviewed item that is due immediately.
func NewLearningItem(p NewItemParams, now time.Time) (*LearningItem, error) {
	item := &LearningItem{
		ID:              uuid.New(),
		UserID:          p.UserID,
		Kind:            p.Kind,
		Term:            strings.TrimSpace(p.Term),
		Definition:      strings.TrimSpace(p.Definition),
		Category:        strings.TrimSpace(p.Category),
		Source:          p.Source,
		ImportanceScore: p.ImportanceScore,
		IsDeferred:      p.Deferred,
		EaseFactor:      p.EaseFactor,
		NextReviewAt:    now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item fields. Failures wrap ErrValidation.
func (i *LearningItem) Validate() error {
	var err error
	switch {
	case i.ID == uuid.Nil:
		err = ErrItemIDEmpty
	case i.UserID == uuid.Nil:
		err = ErrItemUserIDEmpty
	case i.Term == "":
		err = ErrItemTermEmpty
	case !i.Kind.Valid():
		err = ErrItemKindInvalid
	case !i.Source.Valid():
		err = ErrItemSourceInvalid
	case i.ImportanceScore < MinImportanceScore || i.ImportanceScore > MaxImportanceScore:
		err = ErrItemImportance
	case i.Interval < 0 || i.Repetition < 0:
		err = ErrItemNegativeSchedule
	case i.EaseFactor <= 0:
		err = ErrItemEaseFactor
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// IsNew reports whether the item has never been successfully recalled.
func (i *LearningItem) IsNew() bool {
	return i.Repetition == 0 && i.Interval == 0
}

// IsLapsed reports whether the item was known and has since been forgotten.
func (i *LearningItem) IsLapsed() bool {
	return i.Repetition == 0 && i.Interval > 0
}

// IsDue reports whether the item is due at now.
func (i *LearningItem) IsDue(now time.Time) bool {
	return !i.NextReviewAt.After(now)
}

// Clone returns a copy of the item.
func (i *LearningItem) Clone() *LearningItem {
	c := *i
	return &c
}
