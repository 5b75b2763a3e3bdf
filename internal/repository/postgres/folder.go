package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"notetaker/internal/domain"
	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

const folderColumns = `id, user_id, parent_id, name, position_x, position_y, is_trashed, created_at, updated_at`

func scanFolder(row interface {
	Scan(dest ...interface{}) error
}, f *models.Folder) error {
	return row.Scan(
		&f.ID,
		&f.UserID,
		&f.ParentID,
		&f.Name,
		&f.Position.X,
		&f.Position.Y,
		&f.IsTrashed,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (user_id, parent_id, name, position_x, position_y, is_trashed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		folder.Position.X,
		folder.Position.Y,
		folder.IsTrashed,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			// Constraint race: another request created the sibling between
			// the service's pre-check and this insert
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID, scoped to its owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM folders
		WHERE id = $1 AND user_id = $2
	`, folderColumns)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := scanFolder(executor.QueryRow(ctx, query, id, userID), &folder)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update persists all mutable fields of a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders
		SET parent_id = $1, name = $2, position_x = $3, position_y = $4, is_trashed = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Position.X,
		folder.Position.Y,
		folder.IsTrashed,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
			}
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete permanently removes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves the owner's folders with the given trash state, newest-created first
func (r *PostgresFolderRepository) List(ctx context.Context, userID string, trashed bool) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM folders
		WHERE user_id = $1 AND is_trashed = $2
		ORDER BY created_at DESC
	`, folderColumns)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, trashed)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	// Return empty slice instead of nil
	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// ListChildren lists immediate child folders (parentID nil = root level)
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM folders
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY created_at DESC
		`, folderColumns)
		args = []interface{}{userID}
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM folders
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY created_at DESC
		`, folderColumns)
		args = []interface{}{userID, *parentID}
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// FindByName finds a folder by name within a parent location
func (r *PostgresFolderRepository) FindByName(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM folders
			WHERE user_id = $1 AND name = $2 AND parent_id IS NULL
		`, folderColumns)
		args = []interface{}{userID, name}
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM folders
			WHERE user_id = $1 AND name = $2 AND parent_id = $3
		`, folderColumns)
		args = []interface{}{userID, name, *parentID}
	}

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := scanFolder(executor.QueryRow(ctx, query, args...), &folder)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find folder by name: %w", err)
	}

	return &folder, nil
}
