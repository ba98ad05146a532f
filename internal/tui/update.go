package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arthur-debert/nanotodo/nanotodo/editor"
)

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.result.Tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.result.Tasks))
	case "a":
		m.mode = modeAdd
		m.addError = ""
		m.resetInputs()
		m.status = "New task: Tab switches field, Enter saves, Esc cancels"
		return m, m.setFocus(fieldText)
	case " ":
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		toggled, err := m.coll.Toggle(m.ctx, task.ID)
		if err != nil && toggled.ID == "" {
			m.persistStatus("Toggle", err)
			return m, nil
		}
		m.refresh()
		m.moveCursorTo(task.ID)
		if err != nil {
			m.persistStatus("Toggled task", err)
		} else if toggled.Completed {
			m.status = "Completed task"
		} else {
			m.status = "Reopened task"
		}
	case "e":
		task, ok := m.current()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		e := m.editors[task.ID]
		e.Begin()
		m.editing = task.ID
		m.mode = modeEdit
		m.text.SetValue(e.Text())
		m.text.CursorEnd()
		m.due.SetValue(e.DueDate())
		m.due.CursorEnd()
		m.status = "Editing: Tab switches field, Enter saves, Esc cancels"
		return m, m.setFocus(fieldText)
	case "d":
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &task
		m.status = fmt.Sprintf("Delete %q? y/n", task.Text)
	case "f":
		m.view.Filter = m.view.Filter.Next()
		m.refresh()
		m.status = "Filter: " + m.view.Filter.Label()
	case "s":
		m.view.SortBy = m.view.SortBy.Next()
		m.refresh()
		m.status = "Sort: " + m.view.SortBy.Label()
	case "o":
		m.view.Order = m.view.Order.Toggle()
		m.refresh()
		m.status = "Order: " + m.view.Order.Label()
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.resetInputs()
		m.addError = ""
		m.status = "Cancelled"
		return m, nil
	case "tab", "shift+tab":
		return m, m.setFocus(1 - m.focus)
	case "enter":
		task, err := m.coll.Add(m.ctx, m.text.Value(), m.due.Value())
		if err != nil && task.ID == "" {
			m.addError = err.Error()
			m.status = m.addError
			return m, nil
		}
		m.mode = modeList
		m.resetInputs()
		m.addError = ""
		m.refresh()
		m.moveCursorTo(task.ID)
		if err != nil {
			m.persistStatus("Added task", err)
		} else {
			m.status = "Added task"
		}
		return m, nil
	default:
		cmd := m.updateInput(msg)
		if m.addError != "" {
			m.addError = ""
			m.status = defaultStatus
		}
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e, ok := m.editors[m.editing]
	if !ok {
		m.mode = modeList
		m.resetInputs()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		e.Cancel()
		return m.leaveEdit("Edit cancelled"), nil
	case "tab", "shift+tab":
		return m, m.setFocus(1 - m.focus)
	case "enter":
		err := e.Save(m.ctx, m.coll)
		if e.State() == editor.Editing {
			m.status = e.Message()
			return m, nil
		}
		m = m.leaveEdit("Saved task")
		if err != nil {
			m.persistStatus("Saved task", err)
		}
		return m, nil
	default:
		cmd := m.updateInput(msg)
		if m.focus == fieldText {
			e.SetText(m.text.Value())
		} else {
			e.SetDueDate(m.due.Value())
		}
		m.status = "Editing: Tab switches field, Enter saves, Esc cancels"
		return m, cmd
	}
}

func (m Model) leaveEdit(status string) Model {
	id := m.editing
	m.editing = ""
	m.mode = modeList
	m.resetInputs()
	m.refresh()
	m.moveCursorTo(id)
	m.status = status
	return m
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == fieldText {
		m.text, cmd = m.text.Update(msg)
	} else {
		m.due, cmd = m.due.Update(msg)
	}
	return cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		removed, err := m.coll.Delete(m.ctx, m.pendingDel.ID)
		m.confirmDel = false
		m.pendingDel = nil
		m.refresh()
		switch {
		case err != nil:
			m.persistStatus("Deleted task", err)
		case removed:
			m.status = "Deleted task"
		default:
			m.status = "Task was already gone"
		}
		return m, nil
	default:
		return m, nil
	}
}
