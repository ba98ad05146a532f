package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

var taskCounter atomic.Int64

// TaskOption overrides a field of a generated task
type TaskOption func(*types.Task)

// WithID sets the task id
func WithID(id string) TaskOption {
	return func(t *types.Task) { t.ID = id }
}

// WithText sets the task text
func WithText(text string) TaskOption {
	return func(t *types.Task) { t.Text = text }
}

// WithDue sets the due date
func WithDue(due string) TaskOption {
	return func(t *types.Task) { t.DueDate = due }
}

// WithCompleted sets the completion flag
func WithCompleted(completed bool) TaskOption {
	return func(t *types.Task) { t.Completed = completed }
}

// WithCreated sets both timestamps to ms
func WithCreated(ms int64) TaskOption {
	return func(t *types.Task) {
		t.CreatedAt = ms
		t.UpdatedAt = ms
	}
}

// WithUpdated sets the modified timestamp
func WithUpdated(ms int64) TaskOption {
	return func(t *types.Task) { t.UpdatedAt = ms }
}

// NewTask returns an incomplete task due a week from today
func NewTask(opts ...TaskOption) types.Task {
	n := taskCounter.Add(1)
	now := time.Now().UnixMilli()
	task := types.Task{
		ID:        fmt.Sprintf("test-task-%d", n),
		Text:      fmt.Sprintf("Test task %d", n),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
		DueDate:   FutureDate(7),
	}
	for _, opt := range opts {
		opt(&task)
	}
	return task
}

// OverdueTask returns an incomplete task that was due a week ago
func OverdueTask(opts ...TaskOption) types.Task {
	return NewTask(append([]TaskOption{WithDue(PastDate(7)), WithCompleted(false)}, opts...)...)
}

// CompletedTask returns a completed task
func CompletedTask(opts ...TaskOption) types.Task {
	return NewTask(append([]TaskOption{WithCompleted(true)}, opts...)...)
}

// ResetTaskCounter restarts generated ids at test-task-1
func ResetTaskCounter() {
	taskCounter.Store(0)
}

// DateString formats t as a due date
func DateString(t time.Time) string {
	return t.Format(types.DateLayout)
}

// Today is today's due-date string
func Today() string {
	return DateString(time.Now())
}

// FutureDate is the due-date string days after today
func FutureDate(days int) string {
	return DateString(time.Now().AddDate(0, 0, days))
}

// PastDate is the due-date string days before today
func PastDate(days int) string {
	return DateString(time.Now().AddDate(0, 0, -days))
}
