package services

import "context"

// CascadeMode selects how far cascading operations reach into the folder
// tree. Shallow matches the historical behavior (direct children only);
// recursive walks the whole subtree.
type CascadeMode string

const (
	CascadeShallow   CascadeMode = "shallow"
	CascadeRecursive CascadeMode = "recursive"
)

// Valid reports whether m is a known cascade mode.
func (m CascadeMode) Valid() bool {
	return m == CascadeShallow || m == CascadeRecursive
}

// TrashCoordinator owns the cross-entity cascade rules so the folder and
// note services stay decoupled from each other's internals. Cascades run as
// an ordered sequence of idempotent steps, not one atomic write; Reconcile
// is the repair pass for a cascade interrupted mid-flight.
type TrashCoordinator interface {
	// CascadeTrashChildren marks every note in the folder trashed.
	// Child folders keep their own trash state in shallow mode.
	CascadeTrashChildren(ctx context.Context, userID, folderID string) error

	// CascadeRestoreChildren marks every note in the folder active
	CascadeRestoreChildren(ctx context.Context, userID, folderID string) error

	// CascadeDeleteChildren permanently deletes the folder's notes
	// (or moves them to root) and its child folders
	CascadeDeleteChildren(ctx context.Context, userID, folderID string, moveNotesToRoot bool) error

	// Reconcile re-trashes active notes sitting inside trashed folders.
	// Safe to re-run; returns the number of notes repaired.
	Reconcile(ctx context.Context, userID string) (int64, error)
}
