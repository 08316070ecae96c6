package core

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Search filters notes by a case-insensitive query.
// A note matches when its title or content contains the query, or when a word
// of its title is within the configured edit distance of the query.
// Results keep insertion order. An empty query returns every note.
func (s *Service) Search(ctx context.Context, query string) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes, nil
	}

	matched := make([]Note, 0, len(notes))
	for _, n := range notes {
		if matchNote(n, q, s.fuzzyDistance) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func matchNote(n Note, q string, maxDist int) bool {
	title := strings.ToLower(n.Title)
	if strings.Contains(title, q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}

	// Short queries would match nearly anything within the distance.
	if maxDist <= 0 || len([]rune(q)) <= maxDist {
		return false
	}
	for _, word := range strings.Fields(title) {
		if levenshtein.ComputeDistance(word, q) <= maxDist {
			return true
		}
	}
	return false
}
