// Package tui is the interactive terminal front end: a task list with a
// cursor, an add form, and a per-task edit form driven by editor.Editor.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/editor"
	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/types"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type field int

const (
	fieldText field = iota
	fieldDue
)

const defaultStatus = "Press 'a' to add, space to toggle, 'e' to edit, 'd' to delete."

// Model is the bubbletea model
type Model struct {
	ctx  context.Context
	coll *nanotodo.Collection
	now  func() time.Time

	view    types.ViewOptions
	result  query.Result
	editors map[string]*editor.Editor

	cursor  int
	mode    mode
	focus   field
	text    textinput.Model
	due     textinput.Model
	editing string // id of the task being edited

	status     string
	addError   string
	confirmDel bool
	pendingDel *types.Task
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the time source used for overdue markers
func WithClock(fn func() time.Time) Option {
	return func(m *Model) {
		if fn != nil {
			m.now = fn
		}
	}
}

// New builds a model over coll, starting with the given view
func New(ctx context.Context, coll *nanotodo.Collection, view types.ViewOptions, opts ...Option) Model {
	text := textinput.New()
	text.Placeholder = "Task name"
	text.CharLimit = 256
	text.Width = 40

	due := textinput.New()
	due.Placeholder = types.DateLayout
	due.CharLimit = len(types.DateLayout)
	due.Width = 12

	m := Model{
		ctx:     ctx,
		coll:    coll,
		now:     time.Now,
		view:    view,
		editors: make(map[string]*editor.Editor),
		text:    text,
		due:     due,
		status:  defaultStatus,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, coll *nanotodo.Collection, view types.ViewOptions, opts ...Option) error {
	program := tea.NewProgram(New(ctx, coll, view, opts...), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.text.Width = max(10, msg.Width-20)
	}
	return m, nil
}

// Tasks returns the tasks currently shown
func (m Model) Tasks() []types.Task {
	return m.result.Tasks
}

// Status returns the status line
func (m Model) Status() string {
	return m.status
}

// Editor returns the editor attached to a shown task
func (m Model) Editor(id string) *editor.Editor {
	return m.editors[id]
}

// refresh recomputes the view and keeps one editor per shown task
func (m *Model) refresh() {
	m.result = m.coll.View(m.view)

	seen := make(map[string]bool, len(m.result.Tasks))
	for _, t := range m.result.Tasks {
		seen[t.ID] = true
		if e, ok := m.editors[t.ID]; ok {
			e.Sync(t)
		} else {
			m.editors[t.ID] = editor.New(t)
		}
	}
	for id := range m.editors {
		if !seen[id] {
			delete(m.editors, id)
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.result.Tasks))
}

func (m Model) current() (types.Task, bool) {
	if len(m.result.Tasks) == 0 {
		return types.Task{}, false
	}
	return m.result.Tasks[m.cursor], true
}

func (m *Model) moveCursorTo(id string) {
	for i, t := range m.result.Tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	if f == fieldText {
		m.due.Blur()
		return m.text.Focus()
	}
	m.text.Blur()
	return m.due.Focus()
}

func (m *Model) resetInputs() {
	m.text.SetValue("")
	m.due.SetValue("")
	m.text.Blur()
	m.due.Blur()
	m.focus = fieldText
}

func (m *Model) persistStatus(action string, err error) {
	if errors.Is(err, nanotodo.ErrPersist) {
		m.status = fmt.Sprintf("%s, but saving failed: %v", action, err)
		return
	}
	m.status = fmt.Sprintf("%s failed: %v", action, err)
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
