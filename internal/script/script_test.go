package script_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/internal/script"
	"github.com/aretw0/quicknotes/pkg/adapters/memory"
	"github.com/aretw0/quicknotes/pkg/core"
)

const scenario = `
steps:
  - add: {title: A, content: "1"}
  - add: {title: B, content: "2"}
  - delete: 1
  - add: {title: C, content: "3"}
  - update: {id: 2, title: B2, content: "2b"}
  - update: {id: 9, title: X, content: "x"}
  - add: {title: "", content: "empty"}
  - get: 3
  - search: b2
  - list
`

func newRunner(t *testing.T) *script.Runner {
	t.Helper()
	return script.NewRunner(core.NewService(memory.NewRepository(memory.Config{})), nil)
}

func TestParse(t *testing.T) {
	s, err := script.Parse(strings.NewReader(scenario))
	require.NoError(t, err)
	require.Len(t, s.Steps, 10)
	assert.False(t, s.StopOnError())

	assert.Equal(t, script.Step{Op: script.OpAdd, Title: "A", Content: "1"}, s.Steps[0])
	assert.Equal(t, script.Step{Op: script.OpDelete, ID: 1}, s.Steps[2])
	assert.Equal(t, script.Step{Op: script.OpUpdate, ID: 2, Title: "B2", Content: "2b"}, s.Steps[4])
	assert.Equal(t, script.Step{Op: script.OpSearch, Query: "b2"}, s.Steps[8])
	assert.Equal(t, script.Step{Op: script.OpList}, s.Steps[9])
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown op":     "steps:\n  - rename: {id: 1}\n",
		"two ops":        "steps:\n  - {add: {title: a, content: b}, delete: 1}\n",
		"bare delete":    "steps:\n  - delete\n",
		"update no id":   "steps:\n  - update: {title: a, content: b}\n",
		"unknown field":  "step:\n  - list\n",
		"bad delete arg": "steps:\n  - delete: one\n",
		"misspelled arg": "steps:\n  - add: {title: A, contnt: \"1\"}\n",
		"id on add":      "steps:\n  - add: {id: 3, title: A, content: b}\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := script.Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParse_UnknownArgumentNamed(t *testing.T) {
	_, err := script.Parse(strings.NewReader("steps:\n  - update: {id: 1, title: A, contnt: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "contnt" not allowed`)
}

func TestParse_Empty(t *testing.T) {
	s, err := script.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func TestRunner_Scenario(t *testing.T) {
	s, err := script.Parse(strings.NewReader(scenario))
	require.NoError(t, err)

	results, err := newRunner(t).Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 10)

	assert.Equal(t, 1, results[0].Note.ID)
	assert.Equal(t, 2, results[1].Note.ID)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 3, results[3].Note.ID, "ids must not be reused after delete")

	assert.ErrorIs(t, results[5].Err, core.ErrNotFound)
	assert.ErrorIs(t, results[6].Err, core.ErrValidation)
	assert.Nil(t, results[6].Note)

	assert.Equal(t, "C", results[7].Note.Title)
	assert.Equal(t, []core.Note{{ID: 2, Title: "B2", Content: "2b"}}, results[8].Notes)
	assert.Equal(t, []core.Note{
		{ID: 2, Title: "B2", Content: "2b"},
		{ID: 3, Title: "C", Content: "3"},
	}, results[9].Notes)
}

func TestRunner_StopOnError(t *testing.T) {
	input := `
continue_on_error: false
steps:
  - add: {title: A, content: "1"}
  - update: {id: 5, title: X, content: "x"}
  - add: {title: B, content: "2"}
`
	s, err := script.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.True(t, s.StopOnError())

	results, err := newRunner(t).Run(context.Background(), s)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.EqualError(t, err, "step 2 (update): note not found: id 5")
	assert.Len(t, results, 2)
}

func TestRunner_Cancelled(t *testing.T) {
	s, err := script.Parse(strings.NewReader(scenario))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newRunner(t).Run(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunner_FailuresLoggedAtDebug(t *testing.T) {
	s, err := script.Parse(strings.NewReader("steps:\n  - update: {id: 7, title: X, content: x}\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	svc := core.NewService(memory.NewRepository(memory.Config{}))

	results, err := script.NewRunner(svc, logger).Run(context.Background(), s)
	require.NoError(t, err)
	require.ErrorIs(t, results[0].Err, core.ErrNotFound)
	assert.Empty(t, buf.String(), "the caller reports step errors")
}
