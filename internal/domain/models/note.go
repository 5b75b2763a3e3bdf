package models

import (
	"time"
)

// Reminder carries the note's reminder state. Notified is flipped by the
// external reminder sweep once the dateTime has elapsed; the core only has
// to persist whatever the caller sets.
type Reminder struct {
	DateTime *time.Time `json:"dateTime" db:"reminder_at"` // NULL = no reminder
	Notified bool       `json:"notified" db:"reminder_notified"`
}

type Note struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	FolderID  *string   `json:"folderId" db:"folder_id"` // NULL = root level
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"` // may contain markup
	Color     string    `json:"color" db:"color"`     // hex code, e.g. "#ffffff"
	Position  Position  `json:"position"`
	IsTrashed bool      `json:"isTrashed" db:"is_trashed"`
	Reminder  Reminder  `json:"reminder"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
