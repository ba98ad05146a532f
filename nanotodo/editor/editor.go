// Package editor implements the per-item edit state machine: a task is
// either being viewed or being edited, and an edit ends in a validated save
// or a cancel that restores the pre-edit values.
package editor

import (
	"context"
	"errors"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/types"
)

// State of an Editor.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Committer applies a validated edit. *nanotodo.Collection implements it.
type Committer interface {
	Edit(ctx context.Context, id, text, due string) (types.Task, error)
}

// ErrNotEditing is returned by Save when no edit is in progress.
var ErrNotEditing = errors.New("editor: not editing")

// Editor holds the edit state of a single task. Editors of different tasks
// are independent.
type Editor struct {
	task  types.Task
	state State

	text    string
	dueDate string
	message string
}

// New returns an editor viewing task.
func New(task types.Task) *Editor {
	return &Editor{
		task:    task,
		text:    task.Text,
		dueDate: task.DueDate,
	}
}

// Task is the committed task the editor is attached to.
func (e *Editor) Task() types.Task { return e.task }

// State returns the current state.
func (e *Editor) State() State { return e.state }

// Editing reports whether an edit is in progress.
func (e *Editor) Editing() bool { return e.state == Editing }

// Text is the draft text.
func (e *Editor) Text() string { return e.text }

// DueDate is the draft due date.
func (e *Editor) DueDate() string { return e.dueDate }

// Message is the current validation message, empty when there is none.
func (e *Editor) Message() string { return e.message }

// Begin enters the editing state with the draft seeded from the task.
func (e *Editor) Begin() {
	if e.state == Editing {
		return
	}
	e.text = e.task.Text
	e.dueDate = e.task.DueDate
	e.message = ""
	e.state = Editing
}

// SetText updates the draft text and clears any message.
func (e *Editor) SetText(text string) {
	e.text = text
	e.message = ""
}

// SetDueDate updates the draft due date and clears any message.
func (e *Editor) SetDueDate(due string) {
	e.dueDate = due
	e.message = ""
}

// Save validates the draft and commits it through c. A validation failure,
// local or reported by c, keeps the editor in the editing state with the
// failure as its message. When c reports an error together with an updated
// task the change was applied, so the editor returns to viewing and the
// error is passed through.
func (e *Editor) Save(ctx context.Context, c Committer) error {
	if e.state != Editing {
		return ErrNotEditing
	}

	text, due, err := validation.ValidateInput(e.text, e.dueDate)
	if err != nil {
		e.message = err.Error()
		return err
	}

	task, err := c.Edit(ctx, e.task.ID, text, due)
	if err != nil && task.ID == "" {
		e.message = err.Error()
		return err
	}

	e.task = task
	e.text = task.Text
	e.dueDate = task.DueDate
	e.message = ""
	e.state = Viewing
	return err
}

// Cancel discards the draft and returns to viewing without validating.
func (e *Editor) Cancel() {
	e.text = e.task.Text
	e.dueDate = e.task.DueDate
	e.message = ""
	e.state = Viewing
}

// Sync attaches the editor to a newer version of its task. While viewing
// the draft follows the task; while editing only the values Cancel restores
// are updated.
func (e *Editor) Sync(task types.Task) {
	e.task = task
	if e.state == Viewing {
		e.text = task.Text
		e.dueDate = task.DueDate
	}
}
