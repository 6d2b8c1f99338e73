package notes

import "context"

// Repository describes CRUD operations for notes.
//
// Implementations must return ListAll results ordered by creation time
// descending, ties broken by insertion order; the ordering is part of the
// contract, enforced by the query rather than by callers.
type Repository interface {
	// ListAll returns every note, newest first.
	ListAll(ctx context.Context) ([]Note, error)

	// Insert saves a note and returns its assigned identifier. A note with
	// ID > 0 replaces the existing row whole (upsert).
	Insert(ctx context.Context, note *Note) (int64, error)
}
