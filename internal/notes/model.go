// Package notes implements the notes data-access chain: the SQLite data
// access layer, the reporting repository wrapper, the pass-through use
// cases, the live feed, and the service the UI layer drives.
package notes

import "time"

// Note is a single persisted note. A zero ID marks an unsaved draft; the
// store assigns the identifier on insert, so a persisted note always has
// ID > 0. Notes are replaced whole on save, never patched field by field.
type Note struct {
	ID          int64
	Title       string
	Description string
	// CreatedAt is the creation timestamp in epoch milliseconds.
	CreatedAt int64
}

// NewNote returns a draft note stamped with the current time.
func NewNote(title, description string) *Note {
	return &Note{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UnixMilli(),
	}
}
