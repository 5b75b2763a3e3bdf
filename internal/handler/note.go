package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"notetaker/internal/domain/repositories"
	"notetaker/internal/domain/services"
	"notetaker/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	service services.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// List retrieves the caller's notes. folderId="null" selects root-level
// notes; omitting folderId returns notes from everywhere. Unlike folders,
// omitting isTrashed returns active and trashed notes together.
// GET /api/notes?folderId={id|null}&isTrashed=false
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var filter repositories.NoteFilter

	if raw := r.URL.Query().Get("folderId"); raw != "" {
		filter.FolderScoped = true
		if raw != "null" {
			folderID, err := parseUUID(raw)
			if err != nil {
				httputil.RespondError(w, http.StatusBadRequest, "Invalid folderId format")
				return
			}
			filter.FolderID = &folderID
		}
	}

	if raw := r.URL.Query().Get("isTrashed"); raw != "" {
		trashed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid isTrashed value")
			return
		}
		filter.Trashed = &trashed
	}

	notes, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// Get retrieves a single note
// GET /api/notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	noteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	note, err := h.service.Get(r.Context(), userID, noteID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// Create creates a new note
// POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	note, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// Update applies a partial update to a note
// PATCH /api/notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	noteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var req services.UpdateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.service.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// Trash soft-deletes a note
// PUT /api/notes/{id}/trash
func (h *NoteHandler) Trash(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	noteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	note, err := h.service.Trash(r.Context(), userID, noteID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// Restore un-trashes a note
// PUT /api/notes/{id}/restore
func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	noteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	note, err := h.service.Restore(r.Context(), userID, noteID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// Delete permanently removes a note
// DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	noteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EmptyTrash permanently removes all of the caller's trashed notes
// DELETE /api/notes/trash/empty
func (h *NoteHandler) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	count, err := h.service.EmptyTrash(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deletedCount": count})
}
