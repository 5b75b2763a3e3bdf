package handler

import (
	"log/slog"
	"net/http"

	"notetaker/internal/domain/services"
	"notetaker/internal/httputil"
)

// TrashHandler exposes the trash repair operation
type TrashHandler struct {
	coordinator services.TrashCoordinator
	logger      *slog.Logger
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(coordinator services.TrashCoordinator, logger *slog.Logger) *TrashHandler {
	return &TrashHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// Reconcile re-trashes any active notes left inside trashed folders by an
// interrupted cascade. Safe to call repeatedly.
// POST /api/trash/reconcile
func (h *TrashHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	repaired, err := h.coordinator.Reconcile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("trash reconciled", "user_id", userID, "repaired", repaired)
	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"repairedCount": repaired})
}
