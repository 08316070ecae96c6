package quicknotes

import (
	"log/slog"

	"github.com/aretw0/quicknotes/internal/platform"
	"github.com/aretw0/quicknotes/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Service is a public alias for the note service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring QuickNotes.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithEventBuffer allows specifying the size of each watcher buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithFuzzyDistance sets the edit distance tolerated by Search.
func WithFuzzyDistance(d int) Option {
	return platform.WithFuzzyDistance(d)
}

// --- Factory ---

// New creates a new QuickNotes Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}
