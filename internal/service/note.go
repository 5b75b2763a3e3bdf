package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"notetaker/internal/config"
	"notetaker/internal/domain"
	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
	"notetaker/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultNoteColor is applied when a note is created without a color.
const DefaultNoteColor = "#ffffff"

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type noteService struct {
	noteRepo   repositories.NoteRepository
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo repositories.NoteRepository,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// List retrieves the owner's notes matching the filter. Unlike folder
// listing there is no implicit trash filter; callers wanting only active
// notes must ask for them.
func (s *noteService) List(ctx context.Context, userID string, filter repositories.NoteFilter) ([]models.Note, error) {
	return s.noteRepo.List(ctx, userID, filter)
}

// Get retrieves a single note
func (s *noteService) Get(ctx context.Context, userID, noteID string) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, noteID, userID)
}

// Create creates a new note
func (s *noteService) Create(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	title := strings.TrimSpace(req.Title)
	if err := s.validateCreateRequest(title, req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Target folder must exist and belong to the same owner
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.UserID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	color := req.Color
	if color == "" {
		color = DefaultNoteColor
	}

	note := &models.Note{
		UserID:    req.UserID,
		FolderID:  req.FolderID,
		Title:     title,
		Content:   req.Content,
		Color:     color,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.Position != nil {
		note.Position = *req.Position
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"user_id", note.UserID,
		"folder_id", note.FolderID,
	)

	return note, nil
}

// Update applies only the fields present in the request. Beyond trimming
// the title, no re-validation happens here; the schema-level constraints
// are the only enforcement at update time.
func (s *noteService) Update(ctx context.Context, userID, noteID string, req *services.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.FolderID.Present {
		note.FolderID = req.FolderID.Value
	}
	if req.Position != nil {
		note.Position = *req.Position
	}
	if req.Reminder != nil {
		if req.Reminder.DateTime.Present {
			note.Reminder.DateTime = req.Reminder.DateTime.Value
		}
		// Notified is settable on its own so the reminder sweep can flag
		// a note without touching its schedule
		if req.Reminder.Notified != nil {
			note.Reminder.Notified = *req.Reminder.Notified
		}
	}

	note.UpdatedAt = time.Now()
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Trash soft-deletes a note. Trashing an already-trashed note succeeds.
func (s *noteService) Trash(ctx context.Context, userID, noteID string) (*models.Note, error) {
	return s.setTrashed(ctx, userID, noteID, true)
}

// Restore un-trashes a note. Restoring an active note is a no-op that
// still succeeds.
func (s *noteService) Restore(ctx context.Context, userID, noteID string) (*models.Note, error) {
	return s.setTrashed(ctx, userID, noteID, false)
}

func (s *noteService) setTrashed(ctx context.Context, userID, noteID string, trashed bool) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	note.IsTrashed = trashed
	note.UpdatedAt = time.Now()
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note trash state changed", "id", note.ID, "is_trashed", trashed)
	return note, nil
}

// Delete permanently removes a note
func (s *noteService) Delete(ctx context.Context, userID, noteID string) error {
	if err := s.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", noteID, "user_id", userID)
	return nil
}

// EmptyTrash permanently removes all trashed notes for the owner
func (s *noteService) EmptyTrash(ctx context.Context, userID string) (int64, error) {
	count, err := s.noteRepo.DeleteTrashed(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("trash emptied", "user_id", userID, "deleted", count)
	return count, nil
}

// validateCreateRequest validates a note creation request
func (s *noteService) validateCreateRequest(title string, req *services.CreateNoteRequest) error {
	return validation.Errors{
		"title": validation.Validate(title,
			validation.Required.Error("note title is required"),
			validation.RuneLength(1, config.MaxNoteTitleLength).Error(
				fmt.Sprintf("title cannot exceed %d characters", config.MaxNoteTitleLength)),
		),
		"content": validation.Validate(req.Content,
			validation.Required.Error("note content is required"),
		),
		"color": validation.Validate(req.Color,
			validation.Match(hexColorPattern).Error("color must be a valid hex color code"),
		),
	}.Filter()
}
