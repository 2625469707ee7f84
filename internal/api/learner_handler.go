package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/api/shared"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
)

// LearnerHandler handles learner progress requests.
type LearnerHandler struct {
	learnerService service.LearnerService
	logger         *slog.Logger
}

// NewLearnerHandler creates a new LearnerHandler
func NewLearnerHandler(learnerService service.LearnerService, logger *slog.Logger) *LearnerHandler {
	if learnerService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("learnerService cannot be nil for LearnerHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LearnerHandler")
	}

	return &LearnerHandler{
		learnerService: learnerService,
		logger:         logger.With(slog.String("component", "learner_handler")),
	}
}

// CreateLearner handles POST /api/learner. It answers 201 for a new learner and
// 200 when the learner already existed.
func (h *LearnerHandler) CreateLearner(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	progress, created, err := h.learnerService.CreateLearner(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create learner")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		log.Info("learner created", slog.String("user_id", userID.String()))
	}
	shared.RespondWithJSON(w, r, status, progressToResponse(progress))
}

// GetDashboard handles GET /api/dashboard.
func (h *LearnerHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	snapshot, err := h.learnerService.GetDashboardSnapshot(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// UpdateSettings handles PUT /api/learner/settings.
func (h *LearnerHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	progress, err := h.learnerService.UpdateDailyGoal(r.Context(), userID, req.DailyGoal)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update settings")
		return
	}

	log.Debug("daily goal updated",
		slog.String("user_id", userID.String()),
		slog.Int("daily_goal", progress.DailyNewItemGoal))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}

// BuyStreakFreeze handles POST /api/learner/streak-freezes.
func (h *LearnerHandler) BuyStreakFreeze(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	progress, err := h.learnerService.BuyStreakFreeze(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to buy streak freeze")
		return
	}

	log.Info("streak freeze bought",
		slog.String("user_id", userID.String()),
		slog.Int("streak_freeze", progress.StreakFreeze))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(progress))
}
