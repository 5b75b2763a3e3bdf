package services

import (
	"context"

	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
	"notetaker/internal/httputil"
)

// NoteService handles note business logic
type NoteService interface {
	// List retrieves the owner's notes matching the filter
	List(ctx context.Context, userID string, filter repositories.NoteFilter) ([]models.Note, error)

	// Get retrieves a single note
	Get(ctx context.Context, userID, noteID string) (*models.Note, error)

	// Create creates a new note
	Create(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)

	// Update applies only the fields present in the request
	Update(ctx context.Context, userID, noteID string, req *UpdateNoteRequest) (*models.Note, error)

	// Trash soft-deletes a note (idempotent on already-trashed notes)
	Trash(ctx context.Context, userID, noteID string) (*models.Note, error)

	// Restore un-trashes a note (idempotent on active notes)
	Restore(ctx context.Context, userID, noteID string) (*models.Note, error)

	// Delete permanently removes a note
	Delete(ctx context.Context, userID, noteID string) error

	// EmptyTrash permanently removes all trashed notes; returns the count deleted
	EmptyTrash(ctx context.Context, userID string) (int64, error)
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	UserID   string           `json:"-"`
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Color    string           `json:"color,omitempty"`    // defaults to "#ffffff"
	FolderID *string          `json:"folderId,omitempty"` // null/absent = root
	Position *models.Position `json:"position,omitempty"`
}

// UpdateNoteRequest is the partial-update body. Absent fields are left
// untouched; FolderID and Reminder.DateTime are tri-state so callers can
// clear them with an explicit null.
type UpdateNoteRequest struct {
	Title    *string                 `json:"title,omitempty"`
	Content  *string                 `json:"content,omitempty"`
	Color    *string                 `json:"color,omitempty"`
	FolderID httputil.OptionalString `json:"folderId"`
	Position *models.Position        `json:"position,omitempty"`
	Reminder *ReminderPatch          `json:"reminder,omitempty"`
}

// ReminderPatch updates reminder state. Notified is independent of DateTime
// so the reminder sweep can flag a note without touching its schedule.
type ReminderPatch struct {
	DateTime httputil.OptionalTime `json:"dateTime"`
	Notified *bool                 `json:"notified,omitempty"`
}
