package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used for due dates.
const DateLayout = "2006-01-02"

// Task is a single user-entered item. It is persisted verbatim as one element
// of the JSON array stored under the collection key.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt int64  `json:"createdAt" yaml:"created_at"` // epoch milliseconds
	UpdatedAt int64  `json:"updatedAt" yaml:"updated_at"` // epoch milliseconds
	DueDate   string `json:"dueDate" yaml:"due_date"`     // YYYY-MM-DD or empty
}

// HasDueDate reports whether the task carries a due date. Records written by
// older versions may legally have none.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// Due parses the due date in the given location. ok is false for empty or
// malformed values.
func (t Task) Due(loc *time.Location) (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Created returns the creation instant.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Updated returns the last-modified instant.
func (t Task) Updated() time.Time {
	return time.UnixMilli(t.UpdatedAt)
}

// WasModified reports whether the task changed after creation.
func (t Task) WasModified() bool {
	return t.UpdatedAt != t.CreatedAt
}

// Filter is a view predicate over completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Match reports whether the task passes the filter. Unknown filters match
// everything, like FilterAll.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Label is the short caption shown in filter pickers.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Done"
	default:
		return "All"
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// ParseFilter accepts the filter names case-insensitively. "done" is accepted
// as an alias for completed.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q: must be one of all, active, completed", s)
	}
}

// SortKey selects the field the view is ordered by.
type SortKey string

const (
	SortCreatedAt    SortKey = "createdAt"
	SortDueDate      SortKey = "dueDate"
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists the sort keys in display order.
var SortKeys = []SortKey{SortCreatedAt, SortDueDate, SortAlphabetical}

// Label is the caption shown in sort pickers.
func (k SortKey) Label() string {
	switch k {
	case SortDueDate:
		return "Due Date"
	case SortAlphabetical:
		return "A-Z"
	default:
		return "Date Created"
	}
}

// Next cycles through SortKeys.
func (k SortKey) Next() SortKey {
	for i, candidate := range SortKeys {
		if candidate == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortCreatedAt
}

// ParseSortKey accepts the canonical names plus a few CLI-friendly aliases.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "createdat", "created", "created_at":
		return SortCreatedAt, nil
	case "duedate", "due", "due_date":
		return SortDueDate, nil
	case "alphabetical", "alpha", "text", "a-z":
		return SortAlphabetical, nil
	default:
		return "", fmt.Errorf("invalid sort key %q: must be one of createdAt, dueDate, alphabetical", s)
	}
}

// SortOrder is the direction applied after the comparator.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// Label is the caption shown next to the order toggle.
func (o SortOrder) Label() string {
	if o == Ascending {
		return "Ascending"
	}
	return "Descending"
}

// ParseSortOrder accepts asc/desc and their long forms.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "", "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be asc or desc", s)
	}
}

// ViewOptions is the active filter and sort selection.
type ViewOptions struct {
	Filter Filter
	SortBy SortKey
	Order  SortOrder
}

// DefaultViewOptions shows every task, newest first.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Filter: FilterAll,
		SortBy: SortCreatedAt,
		Order:  Descending,
	}
}
