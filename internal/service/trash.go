package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
	"notetaker/internal/domain/services"
)

// trashCoordinator implements the cross-entity cascade rules. Each cascade
// is an ordered sequence of idempotent store writes; nothing here assumes a
// surrounding transaction, but all writes go through GetExecutor-aware
// repositories, so callers may supply one.
type trashCoordinator struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	mode       services.CascadeMode
	logger     *slog.Logger
}

// NewTrashCoordinator creates a trash coordinator with the given cascade mode
func NewTrashCoordinator(
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	mode services.CascadeMode,
	logger *slog.Logger,
) services.TrashCoordinator {
	if !mode.Valid() {
		mode = services.CascadeShallow
	}
	return &trashCoordinator{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		mode:       mode,
		logger:     logger,
	}
}

// CascadeTrashChildren marks every note in the folder trashed. In recursive
// mode descendant folders and their notes are trashed too.
func (c *trashCoordinator) CascadeTrashChildren(ctx context.Context, userID, folderID string) error {
	return c.cascadeSetTrashed(ctx, userID, folderID, true)
}

// CascadeRestoreChildren marks every note in the folder active
func (c *trashCoordinator) CascadeRestoreChildren(ctx context.Context, userID, folderID string) error {
	return c.cascadeSetTrashed(ctx, userID, folderID, false)
}

func (c *trashCoordinator) cascadeSetTrashed(ctx context.Context, userID, folderID string, trashed bool) error {
	count, err := c.noteRepo.SetTrashedByFolder(ctx, userID, folderID, trashed)
	if err != nil {
		return err
	}

	if c.mode == services.CascadeRecursive {
		descendants, err := c.collectDescendants(ctx, userID, folderID)
		if err != nil {
			return err
		}
		for i := range descendants {
			folder := &descendants[i]
			if folder.IsTrashed != trashed {
				folder.IsTrashed = trashed
				folder.UpdatedAt = time.Now()
				if err := c.folderRepo.Update(ctx, folder); err != nil {
					return fmt.Errorf("cascade folder %q: %w", folder.Name, err)
				}
			}
			n, err := c.noteRepo.SetTrashedByFolder(ctx, userID, folder.ID, trashed)
			if err != nil {
				return err
			}
			count += n
		}
	}

	c.logger.Debug("cascade trash state applied",
		"folder_id", folderID,
		"is_trashed", trashed,
		"notes_changed", count,
		"mode", c.mode,
	)

	return nil
}

// CascadeDeleteChildren permanently deletes the folder's notes (or moves
// them to root) and its child folders. Shallow mode touches one level only;
// recursive mode removes the whole subtree, children before parents.
func (c *trashCoordinator) CascadeDeleteChildren(ctx context.Context, userID, folderID string, moveNotesToRoot bool) error {
	folders := []models.Folder{}

	if c.mode == services.CascadeRecursive {
		descendants, err := c.collectDescendants(ctx, userID, folderID)
		if err != nil {
			return err
		}
		folders = descendants
	} else {
		children, err := c.folderRepo.ListChildren(ctx, &folderID, userID)
		if err != nil {
			return fmt.Errorf("list child folders: %w", err)
		}
		folders = children
	}

	// Clear notes of the folder itself first
	if err := c.clearNotes(ctx, userID, folderID, moveNotesToRoot); err != nil {
		return err
	}

	// Delete deepest-first so parents go last
	for i := len(folders) - 1; i >= 0; i-- {
		folder := folders[i]
		if c.mode == services.CascadeRecursive {
			if err := c.clearNotes(ctx, userID, folder.ID, moveNotesToRoot); err != nil {
				return err
			}
		}
		if err := c.folderRepo.Delete(ctx, folder.ID, userID); err != nil {
			return fmt.Errorf("delete child folder %q: %w", folder.Name, err)
		}
		c.logger.Debug("deleted child folder", "id", folder.ID, "name", folder.Name)
	}

	return nil
}

func (c *trashCoordinator) clearNotes(ctx context.Context, userID, folderID string, moveToRoot bool) error {
	if moveToRoot {
		moved, err := c.noteRepo.MoveToRootByFolder(ctx, userID, folderID)
		if err != nil {
			return err
		}
		c.logger.Debug("moved notes to root", "folder_id", folderID, "count", moved)
		return nil
	}

	deleted, err := c.noteRepo.DeleteByFolder(ctx, userID, folderID)
	if err != nil {
		return err
	}
	c.logger.Debug("deleted notes in folder", "folder_id", folderID, "count", deleted)
	return nil
}

// Reconcile is the repair pass for interrupted cascades: it re-trashes
// active notes sitting inside trashed folders. Re-running it is safe.
func (c *trashCoordinator) Reconcile(ctx context.Context, userID string) (int64, error) {
	trashedFolders, err := c.folderRepo.List(ctx, userID, true)
	if err != nil {
		return 0, fmt.Errorf("list trashed folders: %w", err)
	}

	var repaired int64
	for _, folder := range trashedFolders {
		n, err := c.noteRepo.SetTrashedByFolder(ctx, userID, folder.ID, true)
		if err != nil {
			return repaired, fmt.Errorf("reconcile folder %q: %w", folder.Name, err)
		}
		repaired += n
	}

	if repaired > 0 {
		c.logger.Info("trash reconciled", "user_id", userID, "notes_repaired", repaired)
	}

	return repaired, nil
}

// collectDescendants gathers the folder's whole subtree breadth-first.
// The visited set guards against cycles already present in stored data.
func (c *trashCoordinator) collectDescendants(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	var result []models.Folder
	visited := map[string]bool{folderID: true}
	queue := []string{folderID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := c.folderRepo.ListChildren(ctx, &current, userID)
		if err != nil {
			return nil, fmt.Errorf("list child folders: %w", err)
		}

		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}
