// Package lifecycle exposes note change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Watcher is the part of core.Service the source needs.
type Watcher interface {
	Watch(ctx context.Context, pattern string) (<-chan core.Event, error)
}

type noteSource struct {
	watcher Watcher
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits note events matching pattern.
// The subscription is opened on Start and released when its context ends.
func NewSource(w Watcher, pattern string) lifecycle.Source {
	return &noteSource{
		watcher: w,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx, s.pattern)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
