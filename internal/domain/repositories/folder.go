package repositories

import (
	"context"

	"notetaker/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create persists a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID, scoped to its owner.
	// Trashed folders are returned too; callers decide what trash means.
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Update persists all mutable fields of a folder
	Update(ctx context.Context, folder *models.Folder) error

	// Delete permanently removes a folder
	Delete(ctx context.Context, id, userID string) error

	// List retrieves the owner's folders with the given trash state,
	// newest-created first
	List(ctx context.Context, userID string, trashed bool) ([]models.Folder, error)

	// ListChildren lists immediate child folders (parentID nil = root level)
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)

	// FindByName finds a folder by name within a parent location.
	// Returns ErrNotFound when no folder matches.
	FindByName(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error)
}
