package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"notetaker/internal/config"
	"notetaker/internal/domain"
	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
	"notetaker/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	trash      services.TrashCoordinator
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	trash services.TrashCoordinator,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		trash:      trash,
		txManager:  txManager,
		logger:     logger,
	}
}

// List retrieves the owner's folders with the given trash state
func (s *folderService) List(ctx context.Context, userID string, trashed bool) ([]models.Folder, error) {
	return s.folderRepo.List(ctx, userID, trashed)
}

// Create creates a new folder after checking name uniqueness within the
// target location
func (s *folderService) Create(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	name := strings.TrimSpace(req.Name)
	if err := validateFolderName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Parent must exist and belong to the same owner
	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.UserID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	if err := s.checkDuplicateName(ctx, req.UserID, name, req.ParentID, ""); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		UserID:    req.UserID,
		ParentID:  req.ParentID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.Position != nil {
		folder.Position = *req.Position
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", folder.UserID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// Rename renames an active folder. Uniqueness is re-checked against the
// folder's current parent; renaming never changes location.
func (s *folderService) Rename(ctx context.Context, userID, folderID, name string) (*models.Folder, error) {
	folder, err := s.getActive(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if name != folder.Name {
		if err := s.checkDuplicateName(ctx, userID, name, folder.ParentID, folder.ID); err != nil {
			return nil, err
		}
		folder.Name = name
	}

	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", folder.ID, "name", folder.Name)
	return folder, nil
}

// Reparent moves a folder under a new parent (nil = root)
func (s *folderService) Reparent(ctx context.Context, userID, folderID string, parentID *string) (*models.Folder, error) {
	// Normalize empty string to nil (move to root)
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if *parentID == folderID {
			return nil, &domain.HierarchyError{
				Message: "a folder cannot be its own parent",
				Cause:   domain.ErrSelfParent,
			}
		}

		// New parent must exist and belong to the same owner
		parent, err := s.folderRepo.GetByID(ctx, *parentID, userID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}

		if err := s.checkNoCycle(ctx, userID, folderID, parent); err != nil {
			return nil, err
		}
	}

	// Moving must not break name uniqueness in the target location
	if err := s.checkDuplicateName(ctx, userID, folder.Name, parentID, folder.ID); err != nil {
		return nil, err
	}

	folder.ParentID = parentID
	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder reparented", "id", folder.ID, "parent_id", folder.ParentID)
	return folder, nil
}

// Reposition updates a folder's canvas position only
func (s *folderService) Reposition(ctx context.Context, userID, folderID string, pos models.Position) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	folder.Position = pos
	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	return folder, nil
}

// Trash soft-deletes a folder and cascades to its child notes. An
// already-trashed folder is treated as absent.
func (s *folderService) Trash(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	folder, err := s.getActive(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	folder.IsTrashed = true
	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	// Steps are idempotent but not atomic; a failure here leaves the
	// folder trashed with some notes active, repairable via Reconcile
	if err := s.trash.CascadeTrashChildren(ctx, userID, folderID); err != nil {
		s.logger.Error("trash cascade failed", "folder_id", folderID, "error", err)
		return nil, fmt.Errorf("cascade trash: %w", err)
	}

	s.logger.Info("folder trashed", "id", folder.ID)
	return folder, nil
}

// Restore un-trashes a folder and cascades to its child notes
func (s *folderService) Restore(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	folder.IsTrashed = false
	folder.UpdatedAt = time.Now()
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	if err := s.trash.CascadeRestoreChildren(ctx, userID, folderID); err != nil {
		s.logger.Error("restore cascade failed", "folder_id", folderID, "error", err)
		return nil, fmt.Errorf("cascade restore: %w", err)
	}

	s.logger.Info("folder restored", "id", folder.ID)
	return folder, nil
}

// Delete permanently removes a folder and its children in one transaction
func (s *folderService) Delete(ctx context.Context, userID, folderID string, opts services.DeleteFolderOptions) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.trash.CascadeDeleteChildren(txCtx, userID, folderID, opts.MoveNotesToRoot); err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
		return s.folderRepo.Delete(txCtx, folderID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"user_id", userID,
		"notes_moved_to_root", opts.MoveNotesToRoot,
	)

	return nil
}

// getActive loads a folder, treating trashed ones as absent
func (s *folderService) getActive(ctx context.Context, folderID, userID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}
	if folder.IsTrashed {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	return folder, nil
}

// checkDuplicateName rejects a name already used by a sibling folder.
// excludeID skips the folder being renamed/moved itself.
func (s *folderService) checkDuplicateName(ctx context.Context, userID, name string, parentID *string, excludeID string) error {
	existing, err := s.folderRepo.FindByName(ctx, userID, name, parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check for duplicate names: %w", err)
	}

	if existing.ID == excludeID {
		return nil
	}

	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
		ResourceType: "folder",
		ResourceID:   existing.ID,
	}
}

// checkNoCycle walks the ancestors of the proposed parent; the folder being
// moved must not be among them
func (s *folderService) checkNoCycle(ctx context.Context, userID, folderID string, parent *models.Folder) error {
	seen := map[string]bool{parent.ID: true}
	current := parent

	for current.ParentID != nil {
		if *current.ParentID == folderID {
			return &domain.HierarchyError{
				Message: "a folder cannot be moved into its own subtree",
				Cause:   domain.ErrCyclicParent,
			}
		}
		if seen[*current.ParentID] {
			// Pre-existing cycle in stored data; stop walking
			break
		}
		seen[*current.ParentID] = true

		next, err := s.folderRepo.GetByID(ctx, *current.ParentID, userID)
		if err != nil {
			return fmt.Errorf("walk ancestors: %w", err)
		}
		current = next
	}

	return nil
}

// validateFolderName validates a trimmed folder name
func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, config.MaxFolderNameLength).Error(
			fmt.Sprintf("folder name cannot exceed %d characters", config.MaxFolderNameLength)),
	)
}
