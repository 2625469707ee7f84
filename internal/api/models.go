package api

import (
	"time"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/samber/lo"
)

// CaptureItemRequest is the payload for POST /api/items.
type CaptureItemRequest struct {
	Kind            string `json:"kind"             validate:"omitempty,oneof=vocabulary grammar"`
	Term            string `json:"term"             validate:"required,max=200"`
	Definition      string `json:"definition"       validate:"max=2000"`
	Category        string `json:"category"         validate:"max=100"`
	Source          string `json:"source"           validate:"omitempty,oneof=collection manual test"`
	ImportanceScore *int   `json:"importance_score" validate:"omitempty,min=0,max=4"`
}

// toCaptureRequest fills in the defaults: a collection vocabulary item of importance 0.
func (r CaptureItemRequest) toCaptureRequest() service.CaptureRequest {
	return service.CaptureRequest{
		Kind:            domain.ItemKind(lo.Ternary(r.Kind == "", string(domain.ItemKindVocabulary), r.Kind)),
		Term:            r.Term,
		Definition:      r.Definition,
		Category:        r.Category,
		Source:          domain.ItemSource(lo.Ternary(r.Source == "", string(domain.ItemSourceCollection), r.Source)),
		ImportanceScore: lo.FromPtr(r.ImportanceScore),
	}
}

// UpdateSettingsRequest is the payload for PUT /api/learner/settings.
type UpdateSettingsRequest struct {
	DailyGoal int `json:"daily_goal" validate:"required,min=1,max=1000"`
}

// ReviewRequest is the payload for POST /api/items/{id}/review.
// Quality is a pointer so a rating of 0 is distinguishable from a missing field.
type ReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// GrammarReviewRequest is the payload for POST /api/items/{id}/grammar-review.
type GrammarReviewRequest struct {
	Grade *int `json:"grade" validate:"required,min=0,max=3"`
}

// ItemResponse is the wire form of a learning item.
type ItemResponse struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Term            string    `json:"term"`
	Definition      string    `json:"definition"`
	Category        string    `json:"category"`
	Source          string    `json:"source"`
	ImportanceScore int       `json:"importance_score"`
	IsDeferred      bool      `json:"is_deferred"`
	Repetition      int       `json:"repetition"`
	Interval        int       `json:"interval"`
	EaseFactor      float64   `json:"ease_factor"`
	NextReviewAt    time.Time `json:"next_review_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProgressResponse is the wire form of a learner's progress.
type ProgressResponse struct {
	UserID        string     `json:"user_id"`
	DailyGoal     int        `json:"daily_goal"`
	Points        int        `json:"points"`
	StreakCount   int        `json:"streak_count"`
	StreakFreeze  int        `json:"streak_freeze"`
	LastGoalMetAt *time.Time `json:"last_goal_met_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ReviewResponse is returned after a review was recorded.
type ReviewResponse struct {
	Item          ItemResponse     `json:"item"`
	Progress      ProgressResponse `json:"progress"`
	PointsAwarded int              `json:"points_awarded"`
	StreakCredit  string           `json:"streak_credit"`
	GoalMet       bool             `json:"goal_met"`
}

// SessionResponse lists the items of a study session in presentation order.
type SessionResponse struct {
	Kind  string         `json:"kind"`
	Count int            `json:"count"`
	Items []ItemResponse `json:"items"`
}

// ItemListResponse wraps a list of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

func itemToResponse(item *domain.LearningItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID.String(),
		Kind:            string(item.Kind),
		Term:            item.Term,
		Definition:      item.Definition,
		Category:        item.Category,
		Source:          string(item.Source),
		ImportanceScore: item.ImportanceScore,
		IsDeferred:      item.IsDeferred,
		Repetition:      item.Repetition,
		Interval:        item.Interval,
		EaseFactor:      item.EaseFactor,
		NextReviewAt:    item.NextReviewAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func itemsToResponse(items []*domain.LearningItem) []ItemResponse {
	return lo.Map(items, func(item *domain.LearningItem, _ int) ItemResponse {
		return itemToResponse(item)
	})
}

func progressToResponse(p *domain.UserProgress) ProgressResponse {
	return ProgressResponse{
		UserID:        p.UserID.String(),
		DailyGoal:     p.DailyNewItemGoal,
		Points:        p.Points,
		StreakCount:   p.StreakCount,
		StreakFreeze:  p.StreakFreeze,
		LastGoalMetAt: p.LastGoalMetAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func outcomeToResponse(o *review.Outcome) ReviewResponse {
	return ReviewResponse{
		Item:          itemToResponse(o.Item),
		Progress:      progressToResponse(o.Progress),
		PointsAwarded: o.PointsAwarded,
		StreakCredit:  string(o.Credit),
		GoalMet:       o.GoalMet(),
	}
}
