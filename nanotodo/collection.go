// Package nanotodo holds a single user's task list in memory and mirrors it
// to a key-value backend after every change.
//
// A Collection is the only writer of its task list. Views returned by View,
// All and Get are copies and may be kept or modified freely.
package nanotodo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/nanotodo/display"
	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

// Persister is what a Collection saves through. *storage.Bridge implements it.
type Persister interface {
	Load(ctx context.Context) ([]types.Task, error)
	Save(ctx context.Context, tasks []types.Task) error
}

// Collection is the in-memory task list.
type Collection struct {
	persister Persister
	lm        *storage.LockManager
	tasks     []types.Task // newest first

	procMu sync.Mutex
	proc   *query.Processor

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
	locale string
}

// Stats summarizes completion progress.
type Stats struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
	// Percent is Completed/Total rounded down, 0 for an empty list
	Percent int
}

// Open loads the stored collection through p. Absent or malformed stored
// data yields an empty collection; backend failures are returned.
func Open(ctx context.Context, p Persister, opts ...Option) (*Collection, error) {
	c := newCollection(p, opts...)

	tasks, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	c.tasks = tasks
	c.logger.Debug("opened collection", "tasks", len(tasks))
	return c, nil
}

// New returns an empty collection that saves through p without loading.
func New(p Persister, opts ...Option) *Collection {
	return newCollection(p, opts...)
}

func newCollection(p Persister, opts ...Option) *Collection {
	c := &Collection{
		persister: p,
		lm:        storage.NewLockManager(),
		tasks:     []types.Task{},
		now:       time.Now,
		newID:     defaultIDFunc,
		logger:    slog.Default(),
		locale:    query.DefaultLocale,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.proc = query.NewProcessor(c.locale)
	return c
}

// Add validates the input and prepends a new task. Both timestamps are set
// to the same instant.
func (c *Collection) Add(ctx context.Context, text, due string) (types.Task, error) {
	text, due, err := validation.ValidateInput(text, due)
	if err != nil {
		return types.Task{}, err
	}

	return storage.ExecuteWithResult(c.lm, storage.WriteOperation, func() (types.Task, error) {
		now := c.now().UnixMilli()
		task := types.Task{
			ID:        c.newID(),
			Text:      text,
			Completed: false,
			CreatedAt: now,
			UpdatedAt: now,
			DueDate:   due,
		}
		c.tasks = append([]types.Task{task}, c.tasks...)
		c.logger.Debug("added task", "id", task.ID)
		return task, c.persist(ctx, "add")
	})
}

// Edit replaces a task's text and due date. A validation failure returns a
// *validation.Error and leaves the stored task untouched.
func (c *Collection) Edit(ctx context.Context, id, text, due string) (types.Task, error) {
	text, due, err := validation.ValidateInput(text, due)
	if err != nil {
		return types.Task{}, err
	}

	return storage.ExecuteWithResult(c.lm, storage.WriteOperation, func() (types.Task, error) {
		i := c.indexOf(id)
		if i < 0 {
			return types.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		task := &c.tasks[i]
		task.Text = text
		task.DueDate = due
		task.UpdatedAt = c.advance(task.UpdatedAt)
		c.logger.Debug("edited task", "id", id)
		return *task, c.persist(ctx, "edit")
	})
}

// Toggle flips completion. The modified timestamp never moves backwards.
func (c *Collection) Toggle(ctx context.Context, id string) (types.Task, error) {
	return storage.ExecuteWithResult(c.lm, storage.WriteOperation, func() (types.Task, error) {
		i := c.indexOf(id)
		if i < 0 {
			return types.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		task := &c.tasks[i]
		task.Completed = !task.Completed
		task.UpdatedAt = c.advance(task.UpdatedAt)
		c.logger.Debug("toggled task", "id", id, "completed", task.Completed)
		return *task, c.persist(ctx, "toggle")
	})
}

// Delete removes a task. Deleting an unknown id is a no-op that reports
// false and does not touch the backend.
func (c *Collection) Delete(ctx context.Context, id string) (bool, error) {
	return storage.ExecuteWithResult(c.lm, storage.WriteOperation, func() (bool, error) {
		i := c.indexOf(id)
		if i < 0 {
			return false, nil
		}
		c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
		c.logger.Debug("deleted task", "id", id)
		return true, c.persist(ctx, "delete")
	})
}

// Get returns the task with the given id.
func (c *Collection) Get(id string) (types.Task, bool) {
	task, err := storage.ExecuteWithResult(c.lm, storage.ReadOperation, func() (types.Task, error) {
		i := c.indexOf(id)
		if i < 0 {
			return types.Task{}, ErrNotFound
		}
		return c.tasks[i], nil
	})
	return task, err == nil
}

// All returns a copy of every task in stored order.
func (c *Collection) All() []types.Task {
	tasks, _ := storage.ExecuteWithResult(c.lm, storage.ReadOperation, func() ([]types.Task, error) {
		return append([]types.Task(nil), c.tasks...), nil
	})
	return tasks
}

// Len returns the number of tasks.
func (c *Collection) Len() int {
	n, _ := storage.ExecuteWithResult(c.lm, storage.ReadOperation, func() (int, error) {
		return len(c.tasks), nil
	})
	return n
}

// Resolve maps an exact id or a unique id prefix to a full id.
func (c *Collection) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	return storage.ExecuteWithResult(c.lm, storage.ReadOperation, func() (string, error) {
		var matches []string
		for _, t := range c.tasks {
			if t.ID == prefix {
				return t.ID, nil
			}
			if strings.HasPrefix(t.ID, prefix) {
				matches = append(matches, t.ID)
			}
		}
		switch len(matches) {
		case 0:
			return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, prefix, len(matches))
		}
	})
}

// View returns the filtered, sorted view for opts.
func (c *Collection) View(opts types.ViewOptions) query.Result {
	tasks := c.All()

	c.procMu.Lock()
	defer c.procMu.Unlock()
	return c.proc.Execute(tasks, opts)
}

// Stats reports completion progress and how many active tasks are overdue.
func (c *Collection) Stats() Stats {
	now := c.now()
	stats, _ := storage.ExecuteWithResult(c.lm, storage.ReadOperation, func() (Stats, error) {
		var s Stats
		s.Total = len(c.tasks)
		for _, t := range c.tasks {
			if t.Completed {
				s.Completed++
			} else {
				s.Active++
			}
			if display.IsOverdue(t, now) {
				s.Overdue++
			}
		}
		if s.Total > 0 {
			s.Percent = s.Completed * 100 / s.Total
		}
		return s, nil
	})
	return stats
}

// Replace swaps in a whole new task list and saves it. It is used by
// migration, which rewrites every record at once.
func (c *Collection) Replace(ctx context.Context, tasks []types.Task) error {
	return c.lm.Execute(storage.WriteOperation, func() error {
		c.tasks = append([]types.Task{}, tasks...)
		return c.persist(ctx, "replace")
	})
}

func (c *Collection) indexOf(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) advance(prev int64) int64 {
	return max(prev, c.now().UnixMilli())
}

// persist must be called with the write lock held.
func (c *Collection) persist(ctx context.Context, op string) error {
	if err := c.persister.Save(ctx, c.tasks); err != nil {
		c.logger.Error("failed to save tasks", "op", op, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
