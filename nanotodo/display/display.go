// Package display computes the derived, never-persisted presentation
// properties of tasks: overdue state, formatted dates, progress and the
// list captions.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/types"
)

const (
	dateLayout     = "2006/01/02"
	dateTimeLayout = "2006/01/02 15:04"
	placeholder    = "-"
)

// Empty-state messages
const (
	MsgNoTasks        = "No tasks yet. Add one above!"
	MsgAllCompleted   = "All tasks completed!"
	MsgNoneCompleted  = "No completed tasks yet."
	MsgOverdueSuffix  = " (Overdue)"
	progressBarFilled = "█"
	progressBarEmpty  = "░"
)

// IsOverdue reports whether an incomplete task's due date is strictly before
// the calendar day of now, in now's location.
func IsOverdue(t types.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.Due(now.Location())
	if !ok {
		return false
	}
	y, m, d := now.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
}

// FormatDate renders a due date as 2006/01/02, or "-" when it is empty or
// not a date.
func FormatDate(due string) string {
	if due == "" {
		return placeholder
	}
	d, err := time.Parse(types.DateLayout, due)
	if err != nil {
		return placeholder
	}
	return d.Format(dateLayout)
}

// FormatDateTime renders epoch milliseconds in loc, or "-" for zero.
func FormatDateTime(ms int64, loc *time.Location) string {
	if ms <= 0 {
		return placeholder
	}
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(dateTimeLayout)
}

// Relative renders epoch milliseconds relative to now ("3 minutes ago").
func Relative(ms int64, now time.Time) string {
	if ms <= 0 {
		return placeholder
	}
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}

// DueLabel is the due date with the overdue marker appended when it applies.
func DueLabel(t types.Task, now time.Time) string {
	label := FormatDate(t.DueDate)
	if IsOverdue(t, now) {
		label += MsgOverdueSuffix
	}
	return label
}

// ShowUpdated reports whether the modified timestamp is worth showing.
func ShowUpdated(t types.Task) bool {
	return t.WasModified()
}

// EmptyStateMessage returns the message for an empty view, or "" when the
// view has tasks.
func EmptyStateMessage(state query.EmptyState) string {
	switch state {
	case query.EmptyNoTasks:
		return MsgNoTasks
	case query.EmptyAllCompleted:
		return MsgAllCompleted
	case query.EmptyNoneCompleted:
		return MsgNoneCompleted
	default:
		return ""
	}
}

// ShowingSummary is the "Showing X of Y tasks" footer. It is empty unless a
// filter narrows a non-empty list.
func ShowingSummary(r query.Result) string {
	if r.Total == 0 || r.Options.Filter == types.FilterAll {
		return ""
	}
	return fmt.Sprintf("Showing %d of %d tasks", len(r.Tasks), r.Total)
}

// Progress is the "completed / total" caption.
func Progress(completed, total int) string {
	return fmt.Sprintf("%d / %d", completed, total)
}

// ProgressBar draws a bar width cells wide, filled in proportion to
// completed/total.
func ProgressBar(completed, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = min(width, completed*width/total)
	}
	return strings.Repeat(progressBarFilled, filled) + strings.Repeat(progressBarEmpty, width-filled)
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
