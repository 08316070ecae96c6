// Package memory implements core.Repository as an ordered in-memory list.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Repository keeps notes in a slice ordered by insertion.
// IDs come from a counter that only grows, so an ID is never handed out twice.
type Repository struct {
	mu     sync.RWMutex
	notes  []core.Note
	lastID int
	logger *slog.Logger
}

// Config holds the configuration for the in-memory repository.
type Config struct {
	Logger *slog.Logger
}

// NewRepository creates an empty repository.
func NewRepository(config Config) *Repository {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{logger: logger}
}

// List returns a copy of the notes in insertion order.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Note, len(r.notes))
	copy(out, r.notes)
	return out, nil
}

// Get retrieves a note by ID.
func (r *Repository) Get(ctx context.Context, id int) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return core.Note{}, &core.NotFoundError{ID: id}
	}
	return r.notes[i], nil
}

// Add appends a note with the next ID.
func (r *Repository) Add(ctx context.Context, title, content string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	if err := core.Validate(title, content); err != nil {
		return core.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	n := core.Note{ID: r.lastID, Title: title, Content: content}
	r.notes = append(r.notes, n)

	r.logger.Debug("stored note", "id", n.ID, "count", len(r.notes))
	return n, nil
}

// Update replaces title and content of the note with the given ID, keeping its position.
func (r *Repository) Update(ctx context.Context, id int, title, content string) (core.Note, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, err
	}
	if err := core.Validate(title, content); err != nil {
		return core.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return core.Note{}, &core.NotFoundError{ID: id}
	}
	r.notes[i].Title = title
	r.notes[i].Content = content
	return r.notes[i], nil
}

// Delete removes the note with the given ID. A missing ID is a no-op.
func (r *Repository) Delete(ctx context.Context, id int) (core.Note, bool, error) {
	if err := ctx.Err(); err != nil {
		return core.Note{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.notes[:0]
	var removed core.Note
	found := false
	for _, n := range r.notes {
		if n.ID == id {
			removed = n
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if found {
		// clear the tail slot so the removed note is not retained
		r.notes[len(kept)] = core.Note{}
	}
	r.notes = kept
	return removed, found, nil
}

// Len returns the number of stored notes.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

func (r *Repository) indexOf(id int) int {
	for i, n := range r.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

var _ core.Repository = (*Repository)(nil)
