package services

import (
	"context"

	"notetaker/internal/domain/models"
	"notetaker/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// List retrieves the owner's folders; trashed selects the trash state
	// (the HTTP layer defaults it to false when the filter is omitted)
	List(ctx context.Context, userID string, trashed bool) ([]models.Folder, error)

	// Create creates a new folder
	Create(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// Rename renames an active folder, keeping its location
	Rename(ctx context.Context, userID, folderID, name string) (*models.Folder, error)

	// Reparent moves a folder under a new parent (nil = root)
	Reparent(ctx context.Context, userID, folderID string, parentID *string) (*models.Folder, error)

	// Reposition updates a folder's canvas position only
	Reposition(ctx context.Context, userID, folderID string, pos models.Position) (*models.Folder, error)

	// Trash soft-deletes a folder and cascades to its child notes
	Trash(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// Restore un-trashes a folder and cascades to its child notes
	Restore(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// Delete permanently removes a folder and cascades to its children
	Delete(ctx context.Context, userID, folderID string, opts DeleteFolderOptions) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID   string           `json:"-"`
	Name     string           `json:"name"`
	ParentID *string          `json:"parentId,omitempty"` // null/absent = root
	Position *models.Position `json:"position,omitempty"`
}

// UpdateFolderRequest is the PATCH body; the handler dispatches each present
// field to the matching service operation (rename / reparent / reposition).
type UpdateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parentId"` // tri-state: absent / null (root) / id
	Position *models.Position        `json:"position,omitempty"`
}

// DeleteFolderOptions tunes permanent deletion. MoveNotesToRoot re-homes the
// folder's notes to root level instead of deleting them.
type DeleteFolderOptions struct {
	MoveNotesToRoot bool
}
