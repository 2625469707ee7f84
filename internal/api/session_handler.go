package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/api/shared"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
)

// SessionHandler builds study sessions.
type SessionHandler struct {
	sessionService service.SessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService service.SessionService, logger *slog.Logger) *SessionHandler {
	if sessionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessionService cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// GetSession handles GET /api/session?kind=. The kind defaults to vocabulary.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	kind := domain.ItemKindVocabulary
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind = domain.ItemKind(raw)
	}
	if !kind.Valid() {
		HandleAPIError(w, r, fmt.Errorf("%w: unknown kind %q", domain.ErrValidation, kind), "")
		return
	}

	queue, err := h.sessionService.BuildSessionQueue(r.Context(), userID, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build session")
		return
	}

	items := queue.Remaining()
	log.Debug("session built",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(kind)),
		slog.Int("items", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Kind:  string(kind),
		Count: len(items),
		Items: itemsToResponse(items),
	})
}
