// Package router models navigation between the note screens as a closed set
// of typed values instead of string routes.
package router

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrInvalidID    = errors.New("invalid note id in route")
)

// Screen is one of List, Create or Edit.
type Screen interface {
	// Path renders the screen as a deep-link path.
	Path() string
	screen()
}

// List is the home screen showing every note.
type List struct{}

// Create is the form for a new note.
type Create struct{}

// Edit is the form for an existing note.
type Edit struct {
	ID int
}

func (List) Path() string   { return "home" }
func (Create) Path() string { return "create" }
func (e Edit) Path() string { return "edit/" + strconv.Itoa(e.ID) }

func (List) screen()   {}
func (Create) screen() {}
func (Edit) screen()   {}

// Parse turns a deep-link path back into a Screen.
func Parse(path string) (Screen, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	switch path {
	case "", "home":
		return List{}, nil
	case "create":
		return Create{}, nil
	}

	raw, ok := strings.CutPrefix(path, "edit/")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return Edit{ID: id}, nil
}

// Router tracks the current screen and the history behind it.
// The zero value is not usable; call New.
type Router struct {
	stack []Screen
}

// New returns a router positioned on the List screen.
func New() *Router {
	return &Router{stack: []Screen{List{}}}
}

// Current returns the screen on top of the history.
func (r *Router) Current() Screen {
	return r.stack[len(r.stack)-1]
}

// Navigate pushes s. Navigating to List resets the history, the way
// saving a form returns home.
func (r *Router) Navigate(s Screen) {
	if _, ok := s.(List); ok {
		r.Home()
		return
	}
	r.stack = append(r.stack, s)
}

// Back pops the current screen. It reports false when already at the root.
func (r *Router) Back() bool {
	if len(r.stack) == 1 {
		return false
	}
	r.stack = r.stack[:len(r.stack)-1]
	return true
}

// Home drops the history and returns to List.
func (r *Router) Home() {
	r.stack = r.stack[:1]
	r.stack[0] = List{}
}

// Depth returns the number of screens in the history, including the current one.
func (r *Router) Depth() int {
	return len(r.stack)
}
