package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        int
	Title     string
	Timestamp int64 // Unix timestamp
}

func newEvent(t EventType, n Note) Event {
	return Event{
		Type:      t,
		ID:        n.ID,
		Title:     n.Title,
		Timestamp: time.Now().Unix(),
	}
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s note %d (%s)", e.Type, e.ID, e.Title)
}
