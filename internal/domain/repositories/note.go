package repositories

import (
	"context"

	"notetaker/internal/domain/models"
)

// NoteFilter narrows note listings. The folder filter is tri-state:
// FolderScoped=false means no folder filter at all, FolderScoped=true with a
// nil FolderID means root-level notes only. Trashed=nil means no trash
// filter (deliberately unlike folder listing, which always filters).
type NoteFilter struct {
	FolderScoped bool
	FolderID     *string
	Trashed      *bool
}

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create persists a new note
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note by ID, scoped to its owner
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)

	// Update persists all mutable fields of a note
	Update(ctx context.Context, note *models.Note) error

	// Delete permanently removes a note
	Delete(ctx context.Context, id, userID string) error

	// List retrieves the owner's notes matching the filter, newest-created first
	List(ctx context.Context, userID string, filter NoteFilter) ([]models.Note, error)

	// SetTrashedByFolder bulk-flips is_trashed on every note in a folder.
	// Only rows actually changing state are touched, which keeps the
	// cascade steps idempotent. Returns the number of notes updated.
	SetTrashedByFolder(ctx context.Context, userID, folderID string, trashed bool) (int64, error)

	// DeleteByFolder permanently removes every note in a folder regardless
	// of trash state. Returns the number of notes deleted.
	DeleteByFolder(ctx context.Context, userID, folderID string) (int64, error)

	// MoveToRootByFolder re-homes every note in a folder to root level.
	// Returns the number of notes moved.
	MoveToRootByFolder(ctx context.Context, userID, folderID string) (int64, error)

	// DeleteTrashed permanently removes all of the owner's trashed notes.
	// Returns the number of notes deleted.
	DeleteTrashed(ctx context.Context, userID string) (int64, error)
}
