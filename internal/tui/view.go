package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/display"
	"github.com/arthur-debert/nanotodo/types"
)

const progressWidth = 20

func (m Model) View() string {
	var b strings.Builder
	now := m.now()

	b.WriteString("nanotodo\n\n")

	if m.result.Total > 0 {
		stats := m.coll.Stats()
		fmt.Fprintf(&b, "Progress %s %s\n\n",
			display.ProgressBar(stats.Completed, stats.Total, progressWidth),
			display.Progress(stats.Completed, stats.Total))
	}

	fmt.Fprintf(&b, "Filter: %s • Sort: %s • %s\n\n",
		m.view.Filter.Label(), m.view.SortBy.Label(), m.view.Order.Label())

	if msg := display.EmptyStateMessage(m.result.EmptyState()); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	for i, t := range m.result.Tasks {
		if m.mode == modeEdit && t.ID == m.editing {
			b.WriteString(m.renderForm("Edit"))
			continue
		}
		b.WriteString(m.renderTask(i, t, now))
	}

	if summary := display.ShowingSummary(m.result); summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.renderForm("Add"))
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.mode))
	return b.String()
}

func (m Model) renderTask(i int, t types.Task, now time.Time) string {
	cursor := " "
	if m.cursor == i && m.mode == modeList {
		cursor = ">"
	}
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	line := fmt.Sprintf("%s %s %s  due %s", cursor, checkbox, t.Text, display.DueLabel(t, now))
	if display.ShowUpdated(t) {
		line += "  updated " + display.Relative(t.UpdatedAt, now)
	}
	return line + "\n"
}

func (m Model) renderForm(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s task\n", title)
	fmt.Fprintf(&b, "  Name: %s\n", m.text.View())
	fmt.Fprintf(&b, "  Due*: %s\n", m.due.View())
	if m.mode == modeEdit {
		if e, ok := m.editors[m.editing]; ok && e.Message() != "" {
			fmt.Fprintf(&b, "  ! %s\n", e.Message())
		}
	} else if m.addError != "" {
		fmt.Fprintf(&b, "  ! %s\n", m.addError)
	}
	return b.String()
}

func renderHelp(md mode) string {
	if md != modeList {
		return "tab switch field • enter save • esc cancel"
	}
	return "↑/↓ move • a add • space toggle • e edit • d delete • f filter • s sort • o order • q quit"
}
