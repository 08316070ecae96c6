package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Session         string `json:"session" yaml:"session"`
	EventBufferSize int    `json:"event_buffer_size" yaml:"event_buffer_size"`
	FuzzyDistance   int    `json:"fuzzy_distance" yaml:"fuzzy_distance"`
	Watchers        int    `json:"watchers" yaml:"watchers"`
	Published       uint64 `json:"events_published" yaml:"events_published"`
	Dropped         uint64 `json:"events_dropped" yaml:"events_dropped"`
	RepositoryType  string `json:"repository_type" yaml:"repository_type"`
	Repository      any    `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ServiceState{
		Session:         s.session,
		EventBufferSize: s.eventBufferSize,
		FuzzyDistance:   s.fuzzyDistance,
		Watchers:        len(s.watchers),
		Published:       s.published,
		Dropped:         s.dropped,
		RepositoryType:  "unknown",
	}

	if s.repo != nil {
		state.RepositoryType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			state.RepositoryType = comp.ComponentType()
		}
		if intro, ok := s.repo.(introspection.Introspectable); ok {
			state.Repository = intro.State()
		}
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
