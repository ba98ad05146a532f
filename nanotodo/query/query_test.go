package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotodo/types"
)

func texts(tasks []types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestSortByDueDate(t *testing.T) {
	tasks := []types.Task{
		{ID: "a", Text: "A", CreatedAt: 1},
		{ID: "b", Text: "B", CreatedAt: 2, DueDate: "2025-01-01"},
		{ID: "c", Text: "C", CreatedAt: 3, DueDate: "2025-12-01"},
	}
	p := NewProcessor(DefaultLocale)

	testCases := []struct {
		name     string
		order    types.SortOrder
		expected []string
	}{
		{name: "ascending keeps dateless last", order: types.Ascending, expected: []string{"B", "C", "A"}},
		{name: "descending keeps dateless last", order: types.Descending, expected: []string{"C", "B", "A"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := p.Execute(tasks, types.ViewOptions{Filter: types.FilterAll, SortBy: types.SortDueDate, Order: tc.order})
			if diff := cmp.Diff(tc.expected, texts(result.Tasks)); diff != "" {
				t.Errorf("unexpected order (-want +got):\n%s", diff)
			}
			if got := texts(result.Tasks)[len(result.Tasks)-1]; got != "A" {
				t.Errorf("expected dateless task last, got %s", got)
			}
		})
	}
}

func TestSortByDueDateDatelessTieBreak(t *testing.T) {
	tasks := []types.Task{
		{Text: "newer", CreatedAt: 20},
		{Text: "dated", CreatedAt: 5, DueDate: "2030-01-01"},
		{Text: "older", CreatedAt: 10},
	}
	p := NewProcessor(DefaultLocale)

	asc := p.Execute(tasks, types.ViewOptions{SortBy: types.SortDueDate, Order: types.Ascending})
	if diff := cmp.Diff([]string{"dated", "older", "newer"}, texts(asc.Tasks)); diff != "" {
		t.Errorf("ascending (-want +got):\n%s", diff)
	}

	desc := p.Execute(tasks, types.ViewOptions{SortBy: types.SortDueDate, Order: types.Descending})
	if diff := cmp.Diff([]string{"dated", "newer", "older"}, texts(desc.Tasks)); diff != "" {
		t.Errorf("descending (-want +got):\n%s", diff)
	}
}

func TestSortAlphabetical(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		texts  []string
		want   []string
	}{
		{"english", "en", []string{"Banana", "Apple", "cherry"}, []string{"Apple", "Banana", "cherry"}},
		{"default locale", DefaultLocale, []string{"Banana", "Apple"}, []string{"Apple", "Banana"}},
		{"default locale mixed scripts", DefaultLocale,
			[]string{"りんご", "Zeta", "cherry", "Apple", "Banana", "apple"},
			[]string{"apple", "Apple", "Banana", "cherry", "Zeta", "りんご"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]types.Task, len(tt.texts))
			for i, text := range tt.texts {
				tasks[i] = types.Task{Text: text}
			}
			p := NewProcessor(tt.locale)

			asc := p.Execute(tasks, types.ViewOptions{SortBy: types.SortAlphabetical, Order: types.Ascending})
			if diff := cmp.Diff(tt.want, texts(asc.Tasks)); diff != "" {
				t.Errorf("ascending (-want +got):\n%s", diff)
			}

			reversed := make([]string, len(tt.want))
			for i, text := range tt.want {
				reversed[len(tt.want)-1-i] = text
			}
			desc := p.Execute(tasks, types.ViewOptions{SortBy: types.SortAlphabetical, Order: types.Descending})
			if diff := cmp.Diff(reversed, texts(desc.Tasks)); diff != "" {
				t.Errorf("descending (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortCreatedAt(t *testing.T) {
	tasks := []types.Task{{Text: "second", CreatedAt: 2}, {Text: "first", CreatedAt: 1}, {Text: "third", CreatedAt: 3}}
	p := NewProcessor(DefaultLocale)

	result := p.Execute(tasks, types.DefaultViewOptions())
	if diff := cmp.Diff([]string{"third", "second", "first"}, texts(result.Tasks)); diff != "" {
		t.Errorf("default view (-want +got):\n%s", diff)
	}
}

func TestExecuteDoesNotMutateSource(t *testing.T) {
	tasks := []types.Task{{Text: "b", CreatedAt: 2}, {Text: "a", CreatedAt: 1}}
	original := append([]types.Task(nil), tasks...)

	NewProcessor(DefaultLocale).Execute(tasks, types.ViewOptions{SortBy: types.SortCreatedAt, Order: types.Ascending})

	if diff := cmp.Diff(original, tasks); diff != "" {
		t.Errorf("source slice was mutated (-want +got):\n%s", diff)
	}
}

func TestFilterAndEmptyState(t *testing.T) {
	done := []types.Task{{Text: "x", Completed: true}, {Text: "y", Completed: true}}
	p := NewProcessor(DefaultLocale)

	t.Run("active over all-completed list", func(t *testing.T) {
		result := p.Execute(done, types.ViewOptions{Filter: types.FilterActive})
		if len(result.Tasks) != 0 {
			t.Fatalf("expected empty view, got %d", len(result.Tasks))
		}
		if result.EmptyState() != EmptyAllCompleted {
			t.Errorf("expected EmptyAllCompleted, got %v", result.EmptyState())
		}
	})

	t.Run("no tasks at all", func(t *testing.T) {
		result := p.Execute(nil, types.ViewOptions{Filter: types.FilterActive})
		if result.EmptyState() != EmptyNoTasks {
			t.Errorf("expected EmptyNoTasks, got %v", result.EmptyState())
		}
	})

	t.Run("completed filter with nothing done", func(t *testing.T) {
		result := p.Execute([]types.Task{{Text: "open"}}, types.ViewOptions{Filter: types.FilterCompleted})
		if result.EmptyState() != EmptyNoneCompleted {
			t.Errorf("expected EmptyNoneCompleted, got %v", result.EmptyState())
		}
	})

	t.Run("completed filter", func(t *testing.T) {
		mixed := []types.Task{{Text: "open"}, {Text: "closed", Completed: true}}
		result := p.Execute(mixed, types.ViewOptions{Filter: types.FilterCompleted})
		if diff := cmp.Diff([]string{"closed"}, texts(result.Tasks)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if result.EmptyState() != EmptyNone {
			t.Errorf("expected EmptyNone, got %v", result.EmptyState())
		}
	})
}

func TestCount(t *testing.T) {
	tasks := []types.Task{{Completed: true}, {}, {Completed: true}}
	if got := Count(tasks, types.FilterCompleted); got != 2 {
		t.Errorf("expected 2 completed, got %d", got)
	}
	if got := Count(tasks, types.FilterActive); got != 1 {
		t.Errorf("expected 1 active, got %d", got)
	}
	if got := Count(tasks, types.FilterAll); got != 3 {
		t.Errorf("expected 3 total, got %d", got)
	}
}
