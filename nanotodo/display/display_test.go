package display

import (
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/types"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name     string
		task     types.Task
		expected bool
	}{
		{"yesterday", types.Task{DueDate: "2025-06-14"}, true},
		{"today", types.Task{DueDate: "2025-06-15"}, false},
		{"tomorrow", types.Task{DueDate: "2025-06-16"}, false},
		{"completed past due", types.Task{DueDate: "2020-01-01", Completed: true}, false},
		{"no due date", types.Task{}, false},
		{"invalid due date", types.Task{DueDate: "someday"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.task, now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2025-01-05": "2025/01/05",
		"":           "-",
		"not-a-date": "-",
		"2025-13-01": "-",
	}
	for in, expected := range tests {
		if got := FormatDate(in); got != expected {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, expected)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ms := time.Date(2025, 3, 4, 5, 6, 0, 0, time.UTC).UnixMilli()
	if got := FormatDateTime(ms, time.UTC); got != "2025/03/04 05:06" {
		t.Errorf("unexpected format %q", got)
	}
	if got := FormatDateTime(0, time.UTC); got != "-" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestRelative(t *testing.T) {
	ms := now.Add(-3 * time.Minute).UnixMilli()
	if got := Relative(ms, now); got != "3 minutes ago" {
		t.Errorf("unexpected relative time %q", got)
	}
}

func TestDueLabel(t *testing.T) {
	if got := DueLabel(types.Task{DueDate: "2025-06-01"}, now); got != "2025/06/01 (Overdue)" {
		t.Errorf("unexpected label %q", got)
	}
	if got := DueLabel(types.Task{DueDate: "2025-06-01", Completed: true}, now); got != "2025/06/01" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestEmptyStateMessage(t *testing.T) {
	tests := []struct {
		state    query.EmptyState
		expected string
	}{
		{query.EmptyNone, ""},
		{query.EmptyNoTasks, "No tasks yet. Add one above!"},
		{query.EmptyAllCompleted, "All tasks completed!"},
		{query.EmptyNoneCompleted, "No completed tasks yet."},
	}
	for _, tt := range tests {
		if got := EmptyStateMessage(tt.state); got != tt.expected {
			t.Errorf("state %d: expected %q, got %q", tt.state, tt.expected, got)
		}
	}
}

func TestShowingSummary(t *testing.T) {
	tasks := []types.Task{{ID: "a"}}

	filtered := query.Result{Tasks: tasks, Total: 3, Options: types.ViewOptions{Filter: types.FilterActive}}
	if got := ShowingSummary(filtered); got != "Showing 1 of 3 tasks" {
		t.Errorf("unexpected summary %q", got)
	}

	all := query.Result{Tasks: tasks, Total: 1, Options: types.ViewOptions{Filter: types.FilterAll}}
	if got := ShowingSummary(all); got != "" {
		t.Errorf("expected no summary for the all filter, got %q", got)
	}

	empty := query.Result{Total: 0, Options: types.ViewOptions{Filter: types.FilterCompleted}}
	if got := ShowingSummary(empty); got != "" {
		t.Errorf("expected no summary for an empty list, got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		completed, total, width int
		expected                string
	}{
		{0, 0, 4, "░░░░"},
		{1, 2, 4, "██░░"},
		{3, 3, 4, "████"},
		{1, 3, 6, "██░░░░"},
		{1, 1, 0, ""},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.completed, tt.total, tt.width); got != tt.expected {
			t.Errorf("ProgressBar(%d, %d, %d) = %q, want %q", tt.completed, tt.total, tt.width, got, tt.expected)
		}
	}
	if got := Progress(2, 5); got != "2 / 5" {
		t.Errorf("unexpected progress caption %q", got)
	}
}
