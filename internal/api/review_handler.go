package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/api/shared"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service/review"
)

// ReviewHandler handles review submissions.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /api/items/{id}/review with a 0-5 quality.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, itemID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReviewRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	outcome, err := h.reviewService.RecordReviewOutcome(r.Context(), userID, itemID, srs.Quality(*req.Quality))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record review")
		return
	}

	log.Debug("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("quality", *req.Quality),
		slog.String("streak_credit", string(outcome.Credit)))
	shared.RespondWithJSON(w, r, http.StatusOK, outcomeToResponse(outcome))
}

// SubmitGrammarReview handles POST /api/items/{id}/grammar-review with a 0-3 grade.
func (h *ReviewHandler) SubmitGrammarReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, itemID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req GrammarReviewRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	outcome, err := h.reviewService.RecordGrammarReview(r.Context(), userID, itemID, srs.GrammarGrade(*req.Grade))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record grammar review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outcomeToResponse(outcome))
}
