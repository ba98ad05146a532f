package nanotodo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/nanotodo"
	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
)

var start = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newCollection(t *testing.T) (*nanotodo.Collection, *storage.MemoryKV, *testutil.Clock) {
	t.Helper()
	kv := storage.NewMemoryKV()
	clock := testutil.NewClock(start)
	bridge := storage.NewBridge(kv, storage.WithLogger(testutil.DiscardLogger()))
	c, err := nanotodo.Open(context.Background(), bridge,
		nanotodo.WithClock(clock.Now),
		nanotodo.WithIDFunc(testutil.Sequence("task")),
		nanotodo.WithLogger(testutil.DiscardLogger()),
		nanotodo.WithLocale("en"),
	)
	if err != nil {
		t.Fatalf("failed to open collection: %v", err)
	}
	return c, kv, clock
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input adds exactly one task", func(t *testing.T) {
		c, kv, _ := newCollection(t)

		task, err := c.Add(ctx, "  Write report  ", "2025-02-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := types.Task{
			ID:        "task-1",
			Text:      "Write report",
			CreatedAt: start.UnixMilli(),
			UpdatedAt: start.UnixMilli(),
			DueDate:   "2025-02-01",
		}
		if diff := cmp.Diff(expected, task); diff != "" {
			t.Errorf("unexpected task (-want +got):\n%s", diff)
		}
		if c.Len() != 1 {
			t.Errorf("expected 1 task, got %d", c.Len())
		}
		if diff := cmp.Diff([]types.Task{expected}, testutil.StoredTasks(t, kv)); diff != "" {
			t.Errorf("unexpected stored tasks (-want +got):\n%s", diff)
		}
	})

	t.Run("new tasks are prepended", func(t *testing.T) {
		c, _, clock := newCollection(t)

		_, _ = c.Add(ctx, "first", "2025-02-01")
		clock.Advance(time.Second)
		_, _ = c.Add(ctx, "second", "2025-02-01")

		testutil.AssertOrder(t, c.All(), "task-2", "task-1")
	})

	tests := []struct {
		name     string
		text     string
		due      string
		expected error
	}{
		{"empty text", "", "2025-02-01", validation.ErrTextRequired},
		{"whitespace text", "   ", "2025-02-01", validation.ErrTextRequired},
		{"both missing reports text", "", "", validation.ErrTextRequired},
		{"missing due date", "task", "", validation.ErrDueDateRequired},
		{"malformed due date", "task", "tomorrow", validation.ErrDueDateInvalid},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			c, kv, _ := newCollection(t)

			_, err := c.Add(ctx, tt.text, tt.due)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}
			if c.Len() != 0 {
				t.Errorf("collection size changed to %d", c.Len())
			}
			if _, ok, _ := kv.Get(ctx, storage.DefaultKey); ok {
				t.Error("rejected input must not be persisted")
			}
		})
	}
}

func TestEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("updates text, due date and modified time", func(t *testing.T) {
		c, kv, clock := newCollection(t)
		added, _ := c.Add(ctx, "draft", "2025-02-01")
		clock.Advance(time.Minute)

		edited, err := c.Edit(ctx, added.ID, " final ", "2025-03-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if edited.Text != "final" || edited.DueDate != "2025-03-01" {
			t.Errorf("unexpected edit result %+v", edited)
		}
		if edited.UpdatedAt != start.Add(time.Minute).UnixMilli() || edited.CreatedAt != added.CreatedAt {
			t.Errorf("unexpected timestamps %+v", edited)
		}
		if diff := cmp.Diff([]types.Task{edited}, testutil.StoredTasks(t, kv)); diff != "" {
			t.Errorf("unexpected stored tasks (-want +got):\n%s", diff)
		}
	})

	t.Run("empty text leaves the record untouched", func(t *testing.T) {
		c, kv, _ := newCollection(t)
		added, _ := c.Add(ctx, "keep me", "2025-02-01")

		_, err := c.Edit(ctx, added.ID, "  ", "2025-09-09")
		if !errors.Is(err, validation.ErrTextRequired) {
			t.Fatalf("expected text required, got %v", err)
		}
		var verr *validation.Error
		if !errors.As(err, &verr) || verr.Field != validation.FieldText {
			t.Errorf("expected a text field error, got %v", err)
		}

		got, _ := c.Get(added.ID)
		if diff := cmp.Diff(added, got); diff != "" {
			t.Errorf("record changed (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]types.Task{added}, testutil.StoredTasks(t, kv)); diff != "" {
			t.Errorf("stored record changed (-want +got):\n%s", diff)
		}
	})

	t.Run("empty due date is rejected", func(t *testing.T) {
		c, _, _ := newCollection(t)
		added, _ := c.Add(ctx, "task", "2025-02-01")

		_, err := c.Edit(ctx, added.ID, "task", "")
		if !errors.Is(err, validation.ErrDueDateRequired) {
			t.Fatalf("expected due date required, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		c, _, _ := newCollection(t)

		_, err := c.Edit(ctx, "missing", "text", "2025-02-01")
		if !errors.Is(err, nanotodo.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("twice restores the flag with non-decreasing timestamps", func(t *testing.T) {
		c, _, clock := newCollection(t)
		added, _ := c.Add(ctx, "task", "2025-02-01")

		clock.Advance(time.Second)
		first, err := c.Toggle(ctx, added.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock.Advance(time.Second)
		second, err := c.Toggle(ctx, added.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !first.Completed || second.Completed {
			t.Errorf("expected true then false, got %v then %v", first.Completed, second.Completed)
		}
		if !(added.UpdatedAt <= first.UpdatedAt && first.UpdatedAt <= second.UpdatedAt) {
			t.Errorf("timestamps went backwards: %d, %d, %d", added.UpdatedAt, first.UpdatedAt, second.UpdatedAt)
		}
	})

	t.Run("clock moving backwards does not rewind modified time", func(t *testing.T) {
		c, _, clock := newCollection(t)
		added, _ := c.Add(ctx, "task", "2025-02-01")

		clock.Advance(-time.Hour)
		toggled, _ := c.Toggle(ctx, added.ID)

		if toggled.UpdatedAt != added.UpdatedAt {
			t.Errorf("expected modified time to stay at %d, got %d", added.UpdatedAt, toggled.UpdatedAt)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		c, kv, _ := newCollection(t)

		if _, err := c.Toggle(ctx, "missing"); !errors.Is(err, nanotodo.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, ok, _ := kv.Get(ctx, storage.DefaultKey); ok {
			t.Error("nothing should be persisted")
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, kv, _ := newCollection(t)
	a, _ := c.Add(ctx, "a", "2025-02-01")
	b, _ := c.Add(ctx, "b", "2025-02-01")

	removed, err := c.Delete(ctx, a.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	testutil.AssertOrder(t, c.All(), b.ID)
	testutil.AssertOrder(t, testutil.StoredTasks(t, kv), b.ID)

	removed, err = c.Delete(ctx, "missing")
	if err != nil || removed {
		t.Errorf("deleting an unknown id should be a silent no-op, got %v %v", removed, err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 task, got %d", c.Len())
	}
}

func TestPersistFailure(t *testing.T) {
	ctx := context.Background()
	c, kv, _ := newCollection(t)
	kv.SetError = errors.New("quota exceeded")

	task, err := c.Add(ctx, "task", "2025-02-01")
	if !errors.Is(err, nanotodo.ErrPersist) || !errors.Is(err, kv.SetError) {
		t.Fatalf("expected wrapped persist error, got %v", err)
	}
	if _, ok := c.Get(task.ID); !ok {
		t.Error("the in-memory add should stand")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed storage starts empty", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		_ = kv.Set(ctx, storage.DefaultKey, "definitely not json")

		c, err := nanotodo.Open(ctx, storage.NewBridge(kv, storage.WithLogger(testutil.DiscardLogger())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty collection, got %d", c.Len())
		}
	})

	t.Run("legacy records are normalized", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		_ = kv.Set(ctx, storage.DefaultKey, `[{"id":"old","text":"legacy","completed":false,"createdAt":1000}]`)

		c, err := nanotodo.Open(ctx, storage.NewBridge(kv, storage.WithLogger(testutil.DiscardLogger())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		task, ok := c.Get("old")
		if !ok {
			t.Fatal("expected legacy task")
		}
		if task.UpdatedAt != 1000 || task.DueDate != "" {
			t.Errorf("unexpected normalization %+v", task)
		}
	})

	t.Run("backend read failure is returned", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		kv.GetError = errors.New("io error")

		if _, err := nanotodo.Open(ctx, storage.NewBridge(kv)); !errors.Is(err, kv.GetError) {
			t.Fatalf("expected backend error, got %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	c := nanotodo.New(storage.NewBridge(kv), nanotodo.WithIDFunc(testutil.Sequence("ab")),
		nanotodo.WithLogger(testutil.DiscardLogger()))
	for i := 0; i < 11; i++ {
		_, _ = c.Add(ctx, "task", "2025-02-01")
	}

	tests := []struct {
		prefix   string
		expected string
		err      error
	}{
		{"ab-1", "ab-1", nil},
		{"ab-11", "ab-11", nil},
		{"ab-5", "ab-5", nil},
		{"ab-", "", nanotodo.ErrAmbiguousID},
		{"zz", "", nanotodo.ErrNotFound},
		{"", "", nanotodo.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			id, err := c.Resolve(tt.prefix)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil || id != tt.expected {
				t.Errorf("expected %s, got %s (%v)", tt.expected, id, err)
			}
		})
	}
}

func TestView(t *testing.T) {
	c, _, universe := testutil.LoadUniverse(t, nanotodo.WithLocale("en"))

	t.Run("default view is newest first", func(t *testing.T) {
		result := c.View(types.DefaultViewOptions())
		testutil.AssertOrder(t, result.Tasks,
			universe.UnicodeTask.ID,
			universe.CodeReview.ID,
			universe.TeamMeeting.ID,
			universe.ReadBook.ID,
			universe.BuyGroceries.ID,
			universe.LegacyNote.ID,
		)
	})

	t.Run("due date puts dateless last in both directions", func(t *testing.T) {
		for _, order := range []types.SortOrder{types.Ascending, types.Descending} {
			result := c.View(types.ViewOptions{Filter: types.FilterActive, SortBy: types.SortDueDate, Order: order})
			if len(result.Tasks) != 4 {
				t.Fatalf("expected 4 active tasks, got %d", len(result.Tasks))
			}
			if last := result.Tasks[len(result.Tasks)-1]; last.ID != universe.LegacyNote.ID {
				t.Errorf("%s: expected dateless task last, got %s", order, last.ID)
			}
		}
	})

	t.Run("active filter on a completed list is distinguishable", func(t *testing.T) {
		ctx := context.Background()
		for _, task := range c.All() {
			if !task.Completed {
				_, _ = c.Toggle(ctx, task.ID)
			}
		}
		result := c.View(types.ViewOptions{Filter: types.FilterActive, SortBy: types.SortCreatedAt, Order: types.Descending})
		if result.EmptyState() != query.EmptyAllCompleted {
			t.Errorf("expected EmptyAllCompleted, got %v", result.EmptyState())
		}
	})
}

func TestStats(t *testing.T) {
	c, _, _ := testutil.LoadUniverse(t)

	expected := nanotodo.Stats{Total: 6, Completed: 2, Active: 4, Overdue: 2, Percent: 33}
	if diff := cmp.Diff(expected, c.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}

	empty := nanotodo.New(storage.NewBridge(storage.NewMemoryKV()))
	if got := empty.Stats(); got.Percent != 0 || got.Total != 0 {
		t.Errorf("unexpected empty stats %+v", got)
	}
}
