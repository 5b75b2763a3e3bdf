package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"notetaker/internal/domain"
	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
	"notetaker/internal/domain/services"
	"notetaker/internal/httputil"
)

type noteFixture struct {
	noteRepo   *fakeNoteRepo
	folderRepo *fakeFolderRepo
	service    services.NoteService
}

func newNoteFixture() *noteFixture {
	noteRepo := newFakeNoteRepo()
	folderRepo := newFakeFolderRepo()
	return &noteFixture{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		service:    NewNoteService(noteRepo, folderRepo, newTestLogger()),
	}
}

func (f *noteFixture) mustCreateNote(t *testing.T, req *services.CreateNoteRequest) *models.Note {
	t.Helper()
	if req.UserID == "" {
		req.UserID = testUser
	}
	note, err := f.service.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	return note
}

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		fx := newNoteFixture()

		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:   "  Groceries  ",
			Content: "milk",
		})
		if note.ID == "" {
			t.Error("expected generated ID")
		}
		if note.Title != "Groceries" {
			t.Errorf("expected trimmed title, got %q", note.Title)
		}
		if note.Color != DefaultNoteColor {
			t.Errorf("expected default color, got %q", note.Color)
		}
		if note.FolderID != nil {
			t.Errorf("expected root-level note, got folder %v", *note.FolderID)
		}
		if note.IsTrashed {
			t.Error("new note should not be trashed")
		}
		if note.Reminder.DateTime != nil || note.Reminder.Notified {
			t.Errorf("expected empty reminder, got %+v", note.Reminder)
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		fx := newNoteFixture()

		_, err := fx.service.Create(ctx, &services.CreateNoteRequest{
			UserID:  testUser,
			Title:   "   ",
			Content: "body",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects title over 200 characters", func(t *testing.T) {
		fx := newNoteFixture()

		_, err := fx.service.Create(ctx, &services.CreateNoteRequest{
			UserID:  testUser,
			Title:   strings.Repeat("x", 201),
			Content: "body",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects empty content", func(t *testing.T) {
		fx := newNoteFixture()

		_, err := fx.service.Create(ctx, &services.CreateNoteRequest{
			UserID: testUser,
			Title:  "Title",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects malformed color", func(t *testing.T) {
		fx := newNoteFixture()

		for _, color := range []string{"red", "#12", "#12345g", "123456"} {
			_, err := fx.service.Create(ctx, &services.CreateNoteRequest{
				UserID:  testUser,
				Title:   "Title",
				Content: "body",
				Color:   color,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("color %q: expected validation error, got %v", color, err)
			}
		}
	})

	t.Run("accepts short and long hex colors", func(t *testing.T) {
		fx := newNoteFixture()

		for _, color := range []string{"#abc", "#AABBCC", "#1a2b3c"} {
			note := fx.mustCreateNote(t, &services.CreateNoteRequest{
				Title:   "Title " + color,
				Content: "body",
				Color:   color,
			})
			if note.Color != color {
				t.Errorf("expected color %q, got %q", color, note.Color)
			}
		}
	})

	t.Run("rejects missing folder", func(t *testing.T) {
		fx := newNoteFixture()

		_, err := fx.service.Create(ctx, &services.CreateNoteRequest{
			UserID:   testUser,
			Title:    "Title",
			Content:  "body",
			FolderID: strPtr("no-such-folder"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("stores note in existing folder", func(t *testing.T) {
		fx := newNoteFixture()
		folder := &models.Folder{UserID: testUser, Name: "Home"}
		if err := fx.folderRepo.Create(ctx, folder); err != nil {
			t.Fatalf("create folder: %v", err)
		}

		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:    "Title",
			Content:  "body",
			FolderID: &folder.ID,
		})
		if note.FolderID == nil || *note.FolderID != folder.ID {
			t.Errorf("expected folder %s, got %v", folder.ID, note.FolderID)
		}
	})
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only present fields", func(t *testing.T) {
		fx := newNoteFixture()
		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:   "Original",
			Content: "body",
			Color:   "#abc",
		})

		updated, err := fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			Title: strPtr("  Changed  "),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Title != "Changed" {
			t.Errorf("expected trimmed title, got %q", updated.Title)
		}
		if updated.Content != "body" {
			t.Errorf("content should be untouched, got %q", updated.Content)
		}
		if updated.Color != "#abc" {
			t.Errorf("color should be untouched, got %q", updated.Color)
		}
	})

	t.Run("clears folder with explicit null", func(t *testing.T) {
		fx := newNoteFixture()
		folder := &models.Folder{UserID: testUser, Name: "Home"}
		if err := fx.folderRepo.Create(ctx, folder); err != nil {
			t.Fatalf("create folder: %v", err)
		}
		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:    "Title",
			Content:  "body",
			FolderID: &folder.ID,
		})

		updated, err := fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			FolderID: httputil.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.FolderID != nil {
			t.Errorf("expected note at root, got folder %v", *updated.FolderID)
		}
	})

	t.Run("absent folder field leaves placement alone", func(t *testing.T) {
		fx := newNoteFixture()
		folder := &models.Folder{UserID: testUser, Name: "Home"}
		if err := fx.folderRepo.Create(ctx, folder); err != nil {
			t.Fatalf("create folder: %v", err)
		}
		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:    "Title",
			Content:  "body",
			FolderID: &folder.ID,
		})

		updated, err := fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			Content: strPtr("new body"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.FolderID == nil || *updated.FolderID != folder.ID {
			t.Errorf("expected folder %s, got %v", folder.ID, updated.FolderID)
		}
	})

	t.Run("sets and clears reminder", func(t *testing.T) {
		fx := newNoteFixture()
		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:   "Title",
			Content: "body",
		})

		when := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
		updated, err := fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			Reminder: &services.ReminderPatch{
				DateTime: httputil.OptionalTime{Present: true, Value: &when},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Reminder.DateTime == nil || !updated.Reminder.DateTime.Equal(when) {
			t.Errorf("expected reminder at %v, got %v", when, updated.Reminder.DateTime)
		}

		// Flag as notified without touching the schedule
		notified := true
		updated, err = fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			Reminder: &services.ReminderPatch{Notified: &notified},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Reminder.Notified {
			t.Error("expected notified flag set")
		}
		if updated.Reminder.DateTime == nil {
			t.Error("schedule should be untouched")
		}

		// Clear the schedule with an explicit null
		updated, err = fx.service.Update(ctx, testUser, note.ID, &services.UpdateNoteRequest{
			Reminder: &services.ReminderPatch{
				DateTime: httputil.OptionalTime{Present: true, Value: nil},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Reminder.DateTime != nil {
			t.Errorf("expected cleared reminder, got %v", updated.Reminder.DateTime)
		}
	})

	t.Run("missing note reports not found", func(t *testing.T) {
		fx := newNoteFixture()

		_, err := fx.service.Update(ctx, testUser, "no-such-note", &services.UpdateNoteRequest{
			Title: strPtr("x"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestNoteService_TrashRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("trash and restore are idempotent", func(t *testing.T) {
		fx := newNoteFixture()
		note := fx.mustCreateNote(t, &services.CreateNoteRequest{
			Title:   "Title",
			Content: "body",
		})

		for i := 0; i < 2; i++ {
			trashed, err := fx.service.Trash(ctx, testUser, note.ID)
			if err != nil {
				t.Fatalf("trash attempt %d: %v", i+1, err)
			}
			if !trashed.IsTrashed {
				t.Error("note should be trashed")
			}
		}

		for i := 0; i < 2; i++ {
			restored, err := fx.service.Restore(ctx, testUser, note.ID)
			if err != nil {
				t.Fatalf("restore attempt %d: %v", i+1, err)
			}
			if restored.IsTrashed {
				t.Error("note should be active")
			}
		}
	})

	t.Run("missing note reports not found", func(t *testing.T) {
		fx := newNoteFixture()

		if _, err := fx.service.Trash(ctx, testUser, "no-such-note"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestNoteService_EmptyTrash(t *testing.T) {
	ctx := context.Background()
	fx := newNoteFixture()

	kept := fx.mustCreateNote(t, &services.CreateNoteRequest{Title: "Kept", Content: "body"})
	doomed := fx.mustCreateNote(t, &services.CreateNoteRequest{Title: "Doomed", Content: "body"})
	if _, err := fx.service.Trash(ctx, testUser, doomed.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	count, err := fx.service.EmptyTrash(ctx, testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 deleted, got %d", count)
	}

	if _, err := fx.service.Get(ctx, testUser, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("trashed note should be gone")
	}
	if _, err := fx.service.Get(ctx, testUser, kept.ID); err != nil {
		t.Errorf("active note should survive: %v", err)
	}

	// Nothing left to delete
	count, err = fx.service.EmptyTrash(ctx, testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 deleted on second run, got %d", count)
	}
}

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()
	fx := newNoteFixture()

	folder := &models.Folder{UserID: testUser, Name: "Home"}
	if err := fx.folderRepo.Create(ctx, folder); err != nil {
		t.Fatalf("create folder: %v", err)
	}

	inFolder := fx.mustCreateNote(t, &services.CreateNoteRequest{Title: "In", Content: "body", FolderID: &folder.ID})
	atRoot := fx.mustCreateNote(t, &services.CreateNoteRequest{Title: "Root", Content: "body"})
	if _, err := fx.service.Trash(ctx, testUser, atRoot.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	t.Run("no filter returns active and trashed together", func(t *testing.T) {
		notes, err := fx.service.List(ctx, testUser, repositories.NoteFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 2 {
			t.Errorf("expected 2 notes, got %d", len(notes))
		}
	})

	t.Run("folder filter", func(t *testing.T) {
		notes, err := fx.service.List(ctx, testUser, repositories.NoteFilter{
			FolderScoped: true,
			FolderID:     &folder.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != inFolder.ID {
			t.Errorf("expected only the folder's note, got %d notes", len(notes))
		}
	})

	t.Run("root filter", func(t *testing.T) {
		notes, err := fx.service.List(ctx, testUser, repositories.NoteFilter{FolderScoped: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != atRoot.ID {
			t.Errorf("expected only the root note, got %d notes", len(notes))
		}
	})

	t.Run("trash filter", func(t *testing.T) {
		trashed := true
		notes, err := fx.service.List(ctx, testUser, repositories.NoteFilter{Trashed: &trashed})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != atRoot.ID {
			t.Errorf("expected only the trashed note, got %d notes", len(notes))
		}
	})
}
