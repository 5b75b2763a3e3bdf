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

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

const noteColumns = `id, user_id, folder_id, title, content, color, position_x, position_y, is_trashed, reminder_at, reminder_notified, created_at, updated_at`

func scanNote(row interface {
	Scan(dest ...interface{}) error
}, n *models.Note) error {
	return row.Scan(
		&n.ID,
		&n.UserID,
		&n.FolderID,
		&n.Title,
		&n.Content,
		&n.Color,
		&n.Position.X,
		&n.Position.Y,
		&n.IsTrashed,
		&n.Reminder.DateTime,
		&n.Reminder.Notified,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
}

// Create persists a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (user_id, folder_id, title, content, color, position_x, position_y, is_trashed, reminder_at, reminder_notified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		note.UserID,
		note.FolderID,
		note.Title,
		note.Content,
		note.Color,
		note.Position.X,
		note.Position.Y,
		note.IsTrashed,
		note.Reminder.DateTime,
		note.Reminder.Notified,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if IsPgCheckViolation(err) {
			return fmt.Errorf("%w: note rejected by schema constraints", domain.ErrValidation)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID, scoped to its owner
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM notes
		WHERE id = $1 AND user_id = $2
	`, noteColumns)

	var note models.Note
	executor := GetExecutor(ctx, r.pool)
	err := scanNote(executor.QueryRow(ctx, query, id, userID), &note)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

// Update persists all mutable fields of a note
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET folder_id = $1, title = $2, content = $3, color = $4,
		    position_x = $5, position_y = $6, is_trashed = $7,
		    reminder_at = $8, reminder_notified = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		note.FolderID,
		note.Title,
		note.Content,
		note.Color,
		note.Position.X,
		note.Position.Y,
		note.IsTrashed,
		note.Reminder.DateTime,
		note.Reminder.Notified,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	if err != nil {
		if IsPgCheckViolation(err) {
			return fmt.Errorf("%w: note rejected by schema constraints", domain.ErrValidation)
		}
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete permanently removes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves the owner's notes matching the filter, newest-created first
func (r *PostgresNoteRepository) List(ctx context.Context, userID string, filter repositories.NoteFilter) ([]models.Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM notes WHERE user_id = $1`, noteColumns)
	args := []interface{}{userID}
	paramIndex := 2

	if filter.FolderScoped {
		if filter.FolderID == nil {
			query += ` AND folder_id IS NULL`
		} else {
			query += fmt.Sprintf(` AND folder_id = $%d`, paramIndex)
			args = append(args, *filter.FolderID)
			paramIndex++
		}
	}

	if filter.Trashed != nil {
		query += fmt.Sprintf(` AND is_trashed = $%d`, paramIndex)
		args = append(args, *filter.Trashed)
	}

	query += ` ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := scanNote(rows, &note); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	// Return empty slice instead of nil
	if notes == nil {
		notes = []models.Note{}
	}

	return notes, nil
}

// SetTrashedByFolder bulk-flips is_trashed on every note in a folder
func (r *PostgresNoteRepository) SetTrashedByFolder(ctx context.Context, userID, folderID string, trashed bool) (int64, error) {
	// Touch only rows changing state so the cascade stays idempotent
	query := `
		UPDATE notes
		SET is_trashed = $1, updated_at = now()
		WHERE user_id = $2 AND folder_id = $3 AND is_trashed <> $1
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, trashed, userID, folderID)
	if err != nil {
		return 0, fmt.Errorf("set trashed by folder: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteByFolder permanently removes every note in a folder
func (r *PostgresNoteRepository) DeleteByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	query := `DELETE FROM notes WHERE user_id = $1 AND folder_id = $2`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, folderID)
	if err != nil {
		return 0, fmt.Errorf("delete notes by folder: %w", err)
	}

	return result.RowsAffected(), nil
}

// MoveToRootByFolder re-homes every note in a folder to root level
func (r *PostgresNoteRepository) MoveToRootByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	query := `
		UPDATE notes
		SET folder_id = NULL, updated_at = now()
		WHERE user_id = $1 AND folder_id = $2
	`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, folderID)
	if err != nil {
		return 0, fmt.Errorf("move notes to root: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteTrashed permanently removes all of the owner's trashed notes
func (r *PostgresNoteRepository) DeleteTrashed(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM notes WHERE user_id = $1 AND is_trashed = true`

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("empty trash: %w", err)
	}

	return result.RowsAffected(), nil
}
