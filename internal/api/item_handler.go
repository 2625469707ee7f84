package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/api/shared"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
)

// ItemHandler handles item lifecycle requests: capture, inbox and deletion.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService service.ItemService, logger *slog.Logger) *ItemHandler {
	if itemService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("itemService cannot be nil for ItemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With(slog.String("component", "item_handler")),
	}
}

// CaptureItem handles POST /api/items.
func (h *ItemHandler) CaptureItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req CaptureItemRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	item, err := h.itemService.CaptureItem(r.Context(), userID, req.toCaptureRequest())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to capture item")
		return
	}

	log.Debug("item captured",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
		slog.Bool("deferred", item.IsDeferred))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListInbox handles GET /api/inbox.
func (h *ItemHandler) ListInbox(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	items, err := h.itemService.ListInbox(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list inbox")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ItemListResponse{Items: itemsToResponse(items)})
}

// PromoteItem handles POST /api/items/{id}/promote.
func (h *ItemHandler) PromoteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, itemID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	item, err := h.itemService.PromoteItem(r.Context(), userID, itemID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to promote item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /api/items/{id}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, itemID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), userID, itemID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete item")
		return
	}

	log.Debug("item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()))
	w.WriteHeader(http.StatusNoContent)
}
