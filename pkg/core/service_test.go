package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/pkg/adapters/memory"
	"github.com/aretw0/quicknotes/pkg/core"
)

// MockRepository implements core.Repository without any validation,
// to check that the service enforces it on its own.
type MockRepository struct {
	notes []core.Note
	next  int
}

func (m *MockRepository) List(ctx context.Context) ([]core.Note, error) {
	return append([]core.Note(nil), m.notes...), nil
}

func (m *MockRepository) Get(ctx context.Context, id int) (core.Note, error) {
	for _, n := range m.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, &core.NotFoundError{ID: id}
}

func (m *MockRepository) Add(ctx context.Context, title, content string) (core.Note, error) {
	m.next++
	n := core.Note{ID: m.next, Title: title, Content: content}
	m.notes = append(m.notes, n)
	return n, nil
}

func (m *MockRepository) Update(ctx context.Context, id int, title, content string) (core.Note, error) {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Title, m.notes[i].Content = title, content
			return m.notes[i], nil
		}
	}
	return core.Note{}, &core.NotFoundError{ID: id}
}

func (m *MockRepository) Delete(ctx context.Context, id int) (core.Note, bool, error) {
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return n, true, nil
		}
	}
	return core.Note{}, false, nil
}

func setupService(t *testing.T, opts ...core.ServiceOption) *core.Service {
	t.Helper()
	return core.NewService(memory.NewRepository(memory.Config{}), opts...)
}

func TestService_CRUD(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Add(ctx, "A", "1")
	require.NoError(t, err)
	b, err := svc.Add(ctx, "B", "2")
	require.NoError(t, err)

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Note{a, b}, notes)

	updated, err := svc.Update(ctx, a.ID, "A2", "1b")
	require.NoError(t, err)
	assert.Equal(t, core.Note{ID: a.ID, Title: "A2", Content: "1b"}, updated)

	notes, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Note{updated, b}, notes, "update must keep position and leave others untouched")

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	notes, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Note{b}, notes)
}

func TestService_DeleteThenAddDoesNotCollide(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, "A", "1")
	b, _ := svc.Add(ctx, "B", "2")
	require.Equal(t, 1, a.ID)
	require.Equal(t, 2, b.ID)

	require.NoError(t, svc.Delete(ctx, 1))

	c, err := svc.Add(ctx, "C", "3")
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, c.ID)
	assert.Equal(t, 3, c.ID)
}

func TestService_UpdateMissingLeavesStoreUnchanged(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, _ = svc.Add(ctx, "A", "1")
	before, _ := svc.List(ctx)

	_, err := svc.Update(ctx, 7, "X", "Y")
	require.ErrorIs(t, err, core.ErrNotFound)

	after, _ := svc.List(ctx)
	assert.Equal(t, before, after)
}

func TestService_DeleteMissingIsNoop(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, _ = svc.Add(ctx, "A", "1")
	require.NoError(t, svc.Delete(ctx, 99))

	notes, _ := svc.List(ctx)
	assert.Len(t, notes, 1)
}

func TestService_ValidatesIndependentlyOfRepository(t *testing.T) {
	repo := &MockRepository{}
	svc := core.NewService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, " ", "content")
	assert.ErrorIs(t, err, core.ErrValidation)

	n, err := svc.Add(ctx, "title", "content")
	require.NoError(t, err)

	_, err = svc.Update(ctx, n.ID, "title", "")
	assert.ErrorIs(t, err, core.ErrValidation)

	assert.Equal(t, []core.Note{{ID: 1, Title: "title", Content: "content"}}, repo.notes)
}

func TestService_ValidationBeforeLookup(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Update(context.Background(), 5, "", "")
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func receive(t *testing.T, ch <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	return core.Event{}
}

func TestService_Watch(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	n, _ := svc.Add(ctx, "A", "1")
	_, _ = svc.Update(ctx, n.ID, "A2", "2")
	_ = svc.Delete(ctx, 99) // no event
	_ = svc.Delete(ctx, n.ID)

	e := receive(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, n.ID, e.ID)

	e = receive(t, events)
	assert.Equal(t, core.EventModify, e.Type)
	assert.Equal(t, "A2", e.Title)

	e = receive(t, events)
	assert.Equal(t, core.EventDelete, e.Type)
	assert.Equal(t, n.ID, e.ID)

	select {
	case e := <-events:
		t.Fatalf("unexpected event %v", e)
	default:
	}
}

func TestService_WatchPattern(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := svc.Watch(ctx, "todo*")
	require.NoError(t, err)

	_, _ = svc.Add(ctx, "shopping", "milk")
	_, _ = svc.Add(ctx, "todo: call mom", "sunday")

	e := receive(t, events)
	assert.Equal(t, "todo: call mom", e.Title)
}

func TestService_WatchInvalidPattern(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Watch(context.Background(), "[a-")
	assert.Error(t, err)
}

func TestService_WatchClosesOnCancel(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := svc.Watch(ctx, "*")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch channel was not closed")
	}

	assert.Eventually(t, func() bool {
		return svc.State().(core.ServiceState).Watchers == 0
	}, time.Second, 10*time.Millisecond)
}

func TestService_SlowWatcherDoesNotBlock(t *testing.T) {
	svc := setupService(t, core.WithEventBuffer(2))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Watch(ctx, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			_, _ = svc.Add(ctx, "n", "c")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("mutations blocked on a slow watcher")
	}

	state := svc.State().(core.ServiceState)
	assert.Equal(t, uint64(2), state.Published)
	assert.Equal(t, uint64(3), state.Dropped)
}

func TestService_State(t *testing.T) {
	svc := setupService(t, core.WithEventBuffer(7), core.WithFuzzyDistance(0))
	_, _ = svc.Add(context.Background(), "A", "1")

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, 7, state.EventBufferSize)
	assert.Equal(t, 0, state.FuzzyDistance)
	assert.Equal(t, "memory", state.RepositoryType)
	assert.Equal(t, svc.Session(), state.Session)
	assert.NotEmpty(t, state.Session)

	repoState, ok := state.Repository.(memory.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, 1, repoState.Notes)
}
