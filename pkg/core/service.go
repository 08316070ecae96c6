package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

const (
	defaultEventBuffer   = 100
	defaultFuzzyDistance = 1
)

// Service handles the business logic for notes.
// It is the NoteStore contract consumed by the list, create and edit views.
type Service struct {
	repo   Repository
	logger *slog.Logger

	eventBufferSize int
	fuzzyDistance   int
	session         string

	mu          sync.RWMutex
	watchers    map[int]*watcher
	nextWatcher int
	published   uint64
	dropped     uint64
}

type watcher struct {
	pattern string
	ch      chan Event
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service. A nil logger discards output.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the per-watcher buffer size. Zero or less keeps the default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// WithFuzzyDistance sets the maximum edit distance for fuzzy title matches in Search.
// Zero disables fuzzy matching.
func WithFuzzyDistance(d int) ServiceOption {
	return func(s *Service) {
		if d >= 0 {
			s.fuzzyDistance = d
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		logger:          slog.New(slog.DiscardHandler),
		eventBufferSize: defaultEventBuffer,
		fuzzyDistance:   defaultFuzzyDistance,
		session:         uuid.NewString(),
		watchers:        make(map[int]*watcher),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.session)
	return s
}

// Session returns the identifier of this service instance.
func (s *Service) Session() string {
	return s.session
}

// List returns all notes in insertion order.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

// Get retrieves a note by ID.
func (s *Service) Get(ctx context.Context, id int) (Note, error) {
	return s.repo.Get(ctx, id)
}

// Add validates and stores a new note.
func (s *Service) Add(ctx context.Context, title, content string) (Note, error) {
	if err := Validate(title, content); err != nil {
		return Note{}, err
	}

	n, err := s.repo.Add(ctx, title, content)
	if err != nil {
		return Note{}, err
	}

	s.logger.Debug("note added", "id", n.ID)
	s.publish(newEvent(EventCreate, n))
	return n, nil
}

// Update validates and replaces the title and content of an existing note.
func (s *Service) Update(ctx context.Context, id int, title, content string) (Note, error) {
	if err := Validate(title, content); err != nil {
		return Note{}, err
	}

	n, err := s.repo.Update(ctx, id, title, content)
	if err != nil {
		return Note{}, err
	}

	s.logger.Debug("note updated", "id", n.ID)
	s.publish(newEvent(EventModify, n))
	return n, nil
}

// Delete removes a note. Deleting an unknown ID is a no-op.
func (s *Service) Delete(ctx context.Context, id int) error {
	n, removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Debug("delete ignored, note not present", "id", id)
		return nil
	}

	s.logger.Debug("note deleted", "id", id)
	s.publish(newEvent(EventDelete, n))
	return nil
}

// Watch streams change events whose note title matches pattern.
// An empty pattern or "*" matches every note. The channel is closed once ctx is done.
// Events are dropped, not queued, when the watcher's buffer is full.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	w := &watcher{pattern: pattern, ch: make(chan Event, s.eventBufferSize)}
	s.watchers[id] = w
	s.mu.Unlock()

	s.logger.Debug("watcher registered", "watcher", id, "pattern", pattern)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		close(w.ch)
		s.mu.Unlock()
		s.logger.Debug("watcher stopped", "watcher", id)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watcher panic", "watcher", id, "error", err)
	}))

	return w.ch, nil
}

func (s *Service) publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range s.watchers {
		if !w.matches(e.Title) {
			continue
		}
		select {
		case w.ch <- e:
			s.published++
		default:
			s.dropped++
			s.logger.Warn("watcher buffer full, event dropped", "watcher", id, "event", e.String())
		}
	}
}

func (w *watcher) matches(title string) bool {
	if w.pattern == "" || w.pattern == "*" {
		return true
	}
	ok, err := doublestar.Match(w.pattern, title)
	return err == nil && ok
}
