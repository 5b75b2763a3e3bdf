package models

import (
	"time"
)

// Position is a free-form canvas placement for drag-and-drop clients.
type Position struct {
	X float64 `json:"x" db:"position_x"`
	Y float64 `json:"y" db:"position_y"`
}

type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ParentID  *string   `json:"parentId" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Position  Position  `json:"position"`
	IsTrashed bool      `json:"isTrashed" db:"is_trashed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
