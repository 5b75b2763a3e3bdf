package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"notetaker/internal/domain"
	"notetaker/internal/domain/models"
	"notetaker/internal/domain/repositories"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeFolderRepo is an in-memory FolderRepository. It enforces the same
// per-location name uniqueness the database's partial indexes do.
type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	nextID  int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) findDuplicate(folder *models.Folder) *models.Folder {
	for _, f := range r.folders {
		if f.ID != folder.ID && f.UserID == folder.UserID &&
			f.Name == folder.Name && sameParent(f.ParentID, folder.ParentID) {
			return f
		}
	}
	return nil
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dup := r.findDuplicate(folder); dup != nil {
		return &domain.ConflictError{
			Message:      "folder already exists",
			ResourceType: "folder",
			ResourceID:   dup.ID,
		}
	}

	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	if dup := r.findDuplicate(folder); dup != nil {
		return &domain.ConflictError{
			Message:      "folder already exists",
			ResourceType: "folder",
			ResourceID:   dup.ID,
		}
	}

	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) List(ctx context.Context, userID string, trashed bool) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Folder{}
	for _, f := range r.folders {
		if f.UserID == userID && f.IsTrashed == trashed {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Folder{}
	for _, f := range r.folders {
		if f.UserID == userID && sameParent(f.ParentID, parentID) {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) FindByName(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.folders {
		if f.UserID == userID && f.Name == name && sameParent(f.ParentID, parentID) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
}

// fakeNoteRepo is an in-memory NoteRepository
type fakeNoteRepo struct {
	mu     sync.Mutex
	notes  map[string]*models.Note
	nextID int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]*models.Note)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	note.ID = fmt.Sprintf("note-%d", r.nextID)
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}
	copied := *note
	r.notes[note.ID] = &copied
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) List(ctx context.Context, userID string, filter repositories.NoteFilter) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.Note{}
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if filter.FolderScoped && !sameParent(n.FolderID, filter.FolderID) {
			continue
		}
		if filter.Trashed != nil && n.IsTrashed != *filter.Trashed {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (r *fakeNoteRepo) SetTrashedByFolder(ctx context.Context, userID, folderID string, trashed bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID && n.IsTrashed != trashed {
			n.IsTrashed = trashed
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepo) DeleteByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, n := range r.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			delete(r.notes, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepo) MoveToRootByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepo) DeleteTrashed(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, n := range r.notes {
		if n.UserID == userID && n.IsTrashed {
			delete(r.notes, id)
			count++
		}
	}
	return count, nil
}

// fakeTxManager runs the function directly; the fakes have no transactions
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
