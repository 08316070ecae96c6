// Package core holds the note domain: the Note entity, the storage contract
// and the Service that every UI collaborator talks to.
package core

import "strings"

// Note is the central entity of the domain.
// Its ID is assigned by the repository and never reused.
type Note struct {
	ID      int    `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// String renders the note the way the list screen shows it.
func (n Note) String() string {
	return n.Title + ": " + n.Content
}

// Validate reports a ValidationError when title or content is blank.
// Whitespace-only values count as blank.
func Validate(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
