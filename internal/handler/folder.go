package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"notetaker/internal/domain/models"
	"notetaker/internal/domain/services"
	"notetaker/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	service services.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(service services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		service: service,
		logger:  logger,
	}
}

// List retrieves the caller's folders
// GET /api/folders?isTrashed=false
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	// Active folders unless the caller asks for the trash view
	trashed := false
	if raw := r.URL.Query().Get("isTrashed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid isTrashed value")
			return
		}
		trashed = parsed
	}

	folders, err := h.service.List(r.Context(), userID, trashed)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// Create creates a new folder
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	folder, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Update applies a partial update to a folder. Each present field maps to a
// dedicated operation so their distinct uniqueness and hierarchy rules stay
// separate: name renames, parentId moves, position repositions.
// PATCH /api/folders/{id}
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	var req services.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var folder *models.Folder

	if req.Name != nil {
		folder, err = h.service.Rename(r.Context(), userID, folderID, *req.Name)
		if err != nil {
			handleError(w, err)
			return
		}
	}

	if req.ParentID.Present {
		folder, err = h.service.Reparent(r.Context(), userID, folderID, req.ParentID.Value)
		if err != nil {
			handleError(w, err)
			return
		}
	}

	if req.Position != nil {
		folder, err = h.service.Reposition(r.Context(), userID, folderID, *req.Position)
		if err != nil {
			handleError(w, err)
			return
		}
	}

	if folder == nil {
		httputil.RespondError(w, http.StatusBadRequest, "No updatable fields in request")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Trash soft-deletes a folder and its notes
// PUT /api/folders/{id}/trash
func (h *FolderHandler) Trash(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	folder, err := h.service.Trash(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Restore un-trashes a folder and its notes
// PUT /api/folders/{id}/restore
func (h *FolderHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	folder, err := h.service.Restore(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Delete permanently removes a folder. With deleteNotes=false the folder's
// notes are moved to root level instead of being deleted with it.
// DELETE /api/folders/{id}?deleteNotes=true
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	deleteNotes := true
	if raw := r.URL.Query().Get("deleteNotes"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid deleteNotes value")
			return
		}
		deleteNotes = parsed
	}

	opts := services.DeleteFolderOptions{MoveNotesToRoot: !deleteNotes}
	if err := h.service.Delete(r.Context(), userID, folderID, opts); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
