package search

import (
	"github.com/arthur-debert/nanotodo/types"
)

// MockTaskProvider implements TaskProvider for testing
type MockTaskProvider struct {
	tasks []types.Task
	err   error
}

// NewMockTaskProvider creates a new mock with the given tasks
func NewMockTaskProvider(tasks []types.Task) *MockTaskProvider {
	return &MockTaskProvider{tasks: tasks}
}

// SetError configures the mock to return an error
func (m *MockTaskProvider) SetError(err error) {
	m.err = err
}

// Tasks returns the tasks passing the view filter, in their given order
func (m *MockTaskProvider) Tasks(view types.ViewOptions) ([]types.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []types.Task
	for _, t := range m.tasks {
		if view.Filter.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// SampleTasks provides sample tasks for testing
func SampleTasks() []types.Task {
	return []types.Task{
		{ID: "1", Text: "Important Meeting", DueDate: "2024-01-10"},
		{ID: "2", Text: "Budget review meeting", DueDate: "2024-01-15", Completed: true},
		{ID: "3", Text: "Team standup", DueDate: "2024-02-01"},
		{ID: "4", Text: "MEETING"},
		{ID: "5", Text: "会議の準備", DueDate: "2024-01-10"},
	}
}
