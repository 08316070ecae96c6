// Package tui is the interactive front end: a list screen plus the create and
// edit forms, routed through pkg/router.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/router"
)

// Options configures the App.
type Options struct {
	Accent string
	Logger *slog.Logger
}

// App ties together the screens.
type App struct {
	ctx    context.Context
	svc    *core.Service
	router *router.Router
	styles styles
	logger *slog.Logger
	events <-chan core.Event

	notes     []core.Note
	cursor    int
	filter    string
	filtering bool

	form   form
	status string
	failed bool
}

type field int

const (
	fieldTitle field = iota
	fieldContent
)

type form struct {
	title   []rune
	content []rune
	focus   field
}

func (f *form) reset(title, content string) {
	f.title = []rune(title)
	f.content = []rune(content)
	f.focus = fieldTitle
}

func (f *form) active() *[]rune {
	if f.focus == fieldContent {
		return &f.content
	}
	return &f.title
}

type notesLoadedMsg struct {
	query string
	notes []core.Note
}
type editLoadedMsg struct{ note core.Note }
type savedMsg struct{ note core.Note }
type deletedMsg struct{ id int }
type eventMsg struct{ event core.Event }
type errMsg struct{ err error }

// New creates the App and subscribes it to store changes for the lifetime of ctx.
func New(ctx context.Context, svc *core.Service, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	events, err := svc.Watch(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to watch notes: %w", err)
	}

	return &App{
		ctx:    ctx,
		svc:    svc,
		router: router.New(),
		styles: newStyles(opts.Accent),
		logger: logger,
		events: events,
	}, nil
}

// Screen returns the screen currently shown.
func (a *App) Screen() router.Screen {
	return a.router.Current()
}

// Notes returns the rows shown on the list screen.
func (a *App) Notes() []core.Note {
	return a.notes
}

// Status returns the last status line.
func (a *App) Status() string {
	return a.status
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadNotes(), a.waitForEvent())
}

func (a *App) loadNotes() tea.Cmd {
	query := a.filter
	return func() tea.Msg {
		notes, err := a.svc.Search(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return notesLoadedMsg{query: query, notes: notes}
	}
}

func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-a.events
		if !ok {
			return nil
		}
		return eventMsg{e}
	}
}

func (a *App) openEditCmd(id int) tea.Cmd {
	return func() tea.Msg {
		n, err := a.svc.Get(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return editLoadedMsg{n}
	}
}

func (a *App) saveCmd() tea.Cmd {
	title, content := string(a.form.title), string(a.form.content)
	screen := a.router.Current()
	return func() tea.Msg {
		var (
			n   core.Note
			err error
		)
		switch s := screen.(type) {
		case router.Create:
			n, err = a.svc.Add(a.ctx, title, content)
		case router.Edit:
			n, err = a.svc.Update(a.ctx, s.ID, title, content)
		default:
			err = fmt.Errorf("nothing to save on %s", screen.Path())
		}
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{n}
	}
}

func (a *App) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return deletedMsg{id}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch a.router.Current().(type) {
		case router.List:
			return a.handleListKey(m)
		default:
			return a.handleFormKey(m)
		}

	case notesLoadedMsg:
		// Replies can arrive out of order; keep only the one for the current filter.
		if m.query != a.filter {
			return a, nil
		}
		a.notes = m.notes
		if a.cursor >= len(a.notes) {
			a.cursor = max(len(a.notes)-1, 0)
		}

	case editLoadedMsg:
		a.form.reset(m.note.Title, m.note.Content)
		a.router.Navigate(router.Edit{ID: m.note.ID})
		a.setStatus("")

	case savedMsg:
		a.router.Navigate(router.List{})
		a.setStatus(fmt.Sprintf("saved %q", m.note.Title))
		return a, a.loadNotes()

	case deletedMsg:
		a.setStatus(fmt.Sprintf("deleted note %d", m.id))
		return a, a.loadNotes()

	case eventMsg:
		a.logger.Debug("store changed", "event", m.event.String())
		return a, tea.Batch(a.loadNotes(), a.waitForEvent())

	case errMsg:
		a.setError(m.err)
		if errors.Is(m.err, core.ErrNotFound) {
			if _, editing := a.router.Current().(router.Edit); editing {
				a.router.Home()
			}
			return a, a.loadNotes()
		}
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		return a.handleFilterKey(m)
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.notes)-1 {
			a.cursor++
		}
	case "a", "n":
		a.form.reset("", "")
		a.router.Navigate(router.Create{})
		a.setStatus("")
	case "enter", "e":
		if n, ok := a.selected(); ok {
			return a, a.openEditCmd(n.ID)
		}
	case "d", "x":
		if n, ok := a.selected(); ok {
			return a, a.deleteCmd(n.ID)
		}
	case "/":
		a.filtering = true
	case "esc":
		if a.filter != "" {
			a.filter = ""
			return a, a.loadNotes()
		}
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEnter:
		a.filtering = false
		return a, nil
	case tea.KeyEsc:
		a.filtering = false
		a.filter = ""
	case tea.KeyBackspace, tea.KeyCtrlH:
		r := []rune(a.filter)
		if len(r) == 0 {
			return a, nil
		}
		a.filter = string(r[:len(r)-1])
	case tea.KeySpace:
		a.filter += " "
	case tea.KeyRunes:
		a.filter += string(m.Runes)
	default:
		return a, nil
	}
	a.cursor = 0
	return a, a.loadNotes()
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.router.Back()
		a.setStatus("")
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if a.form.focus == fieldTitle {
			a.form.focus = fieldContent
		} else {
			a.form.focus = fieldTitle
		}
	case tea.KeyEnter:
		return a, a.saveCmd()
	case tea.KeyBackspace, tea.KeyCtrlH:
		buf := a.form.active()
		if len(*buf) > 0 {
			*buf = (*buf)[:len(*buf)-1]
		}
	case tea.KeySpace:
		buf := a.form.active()
		*buf = append(*buf, ' ')
	case tea.KeyRunes:
		buf := a.form.active()
		*buf = append(*buf, m.Runes...)
	}
	return a, nil
}

func (a *App) selected() (core.Note, bool) {
	if a.cursor < 0 || a.cursor >= len(a.notes) {
		return core.Note{}, false
	}
	return a.notes[a.cursor], true
}

func (a *App) setStatus(s string) {
	a.status = s
	a.failed = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.failed = true
}

func (a *App) View() string {
	var b strings.Builder

	switch s := a.router.Current().(type) {
	case router.List:
		a.viewList(&b)
	case router.Create:
		b.WriteString(a.styles.title.Render("New note"))
		b.WriteString("\n")
		a.viewForm(&b)
	case router.Edit:
		b.WriteString(a.styles.title.Render(fmt.Sprintf("Edit note %d", s.ID)))
		b.WriteString("\n")
		a.viewForm(&b)
	}

	if a.status != "" {
		b.WriteString("\n")
		if a.failed {
			b.WriteString(a.styles.errText.Render(a.status))
		} else {
			b.WriteString(a.styles.status.Render(a.status))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewList(b *strings.Builder) {
	b.WriteString(a.styles.title.Render("Notes"))
	b.WriteString("\n")

	if a.filtering || a.filter != "" {
		b.WriteString(a.styles.muted.Render("filter: " + a.filter))
		b.WriteString("\n")
	}

	if len(a.notes) == 0 {
		b.WriteString(a.styles.muted.Render("no notes yet, press a to add one"))
		b.WriteString("\n")
	}
	for i, n := range a.notes {
		line := n.String()
		if i == a.cursor {
			b.WriteString(a.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.muted.Render("a add • enter edit • d delete • / filter • q quit"))
	b.WriteString("\n")
}

func (a *App) viewForm(b *strings.Builder) {
	rows := []struct {
		name  string
		value []rune
		f     field
	}{
		{"Title", a.form.title, fieldTitle},
		{"Content", a.form.content, fieldContent},
	}
	for _, r := range rows {
		label := a.styles.label.Render(r.name)
		cursor := ""
		if a.form.focus == r.f {
			label = a.styles.focused.Render(r.name)
			cursor = "_"
		}
		b.WriteString(label + string(r.value) + cursor + "\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.muted.Render("tab switch field • enter save • esc back"))
	b.WriteString("\n")
}
