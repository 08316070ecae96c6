package core

import "context"

// Repository defines the contract for holding notes.
// Implementations keep notes in insertion order and assign IDs that are
// strictly increasing and never reused, even after deletions.
type Repository interface {
	// List returns a snapshot of all notes in insertion order.
	List(ctx context.Context) ([]Note, error)

	// Get retrieves a note by its ID.
	Get(ctx context.Context, id int) (Note, error)

	// Add appends a new note and returns it with its assigned ID.
	Add(ctx context.Context, title, content string) (Note, error)

	// Update replaces title and content of an existing note in place.
	Update(ctx context.Context, id int, title, content string) (Note, error)

	// Delete removes a note by its ID. It reports the removed note and
	// whether anything was removed; a missing ID is not an error.
	Delete(ctx context.Context, id int) (Note, bool, error)
}
