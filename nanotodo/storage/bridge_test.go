package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/nanotodo/types"
)

func quietBridge(kv KV, opts ...BridgeOption) *Bridge {
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewBridge(kv, opts...)
}

func TestBridgeLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   *string
		expected []types.Task
	}{
		{name: "absent key", stored: nil, expected: []types.Task{}},
		{name: "not json", stored: strPtr("{{nope"), expected: []types.Task{}},
		{name: "json object", stored: strPtr(`{"id":"1"}`), expected: []types.Task{}},
		{name: "json null", stored: strPtr(`null`), expected: []types.Task{}},
		{name: "empty array", stored: strPtr(`[]`), expected: []types.Task{}},
		{
			name:     "null record among valid ones",
			stored:   strPtr(`[null,{"id":"real","text":"Real","completed":false,"createdAt":3,"updatedAt":3,"dueDate":"2025-01-01"}]`),
			expected: []types.Task{},
		},
		{
			name:   "current records",
			stored: strPtr(`[{"id":"a","text":"A","completed":true,"createdAt":1,"updatedAt":2,"dueDate":"2025-01-01"}]`),
			expected: []types.Task{
				{ID: "a", Text: "A", Completed: true, CreatedAt: 1, UpdatedAt: 2, DueDate: "2025-01-01"},
			},
		},
		{
			name:   "legacy records",
			stored: strPtr(`[{"id":"a","text":"A","completed":false,"createdAt":7}]`),
			expected: []types.Task{
				{ID: "a", Text: "A", CreatedAt: 7, UpdatedAt: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			if tt.stored != nil {
				if err := kv.Set(ctx, DefaultKey, *tt.stored); err != nil {
					t.Fatalf("failed to seed: %v", err)
				}
			}

			tasks, err := quietBridge(kv).Load(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, tasks); diff != "" {
				t.Errorf("unexpected tasks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBridgeLoadAssignsMissingIDs(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	stored := `[{"text":"no id","createdAt":1},{"id":"x","text":"first","createdAt":2},{"id":"x","text":"again","createdAt":3}]`
	if err := kv.Set(ctx, DefaultKey, stored); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	tasks, result, err := quietBridge(kv).LoadWithResult(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if task.ID == "" {
			t.Errorf("task %q was left without an id", task.Text)
		}
		if seen[task.ID] {
			t.Errorf("id %s appears twice", task.ID)
		}
		seen[task.ID] = true
	}
	if tasks[1].ID != "x" {
		t.Errorf("the first holder of an id keeps it, got %s", tasks[1].ID)
	}
	if got := len(result.Warnings()); got != 2 {
		t.Errorf("expected 2 warnings, got %d", got)
	}
}

func TestBridgeLoadBackendError(t *testing.T) {
	kv := NewMemoryKV()
	kv.GetError = errors.New("disk on fire")

	_, err := quietBridge(kv).Load(context.Background())
	if err == nil || !errors.Is(err, kv.GetError) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestBridgeSave(t *testing.T) {
	ctx := context.Background()

	t.Run("empty collection writes empty array", func(t *testing.T) {
		kv := NewMemoryKV()
		if err := quietBridge(kv).Save(ctx, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		value, ok, _ := kv.Get(ctx, DefaultKey)
		if !ok || value != "[]" {
			t.Errorf("expected [] to be stored, got %q (present=%v)", value, ok)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		kv := NewMemoryKV()
		bridge := quietBridge(kv)
		tasks := []types.Task{
			{ID: "b", Text: "second", CreatedAt: 20, UpdatedAt: 25, DueDate: "2025-03-01"},
			{ID: "a", Text: "first", Completed: true, CreatedAt: 10, UpdatedAt: 10, DueDate: ""},
		}
		if err := bridge.Save(ctx, tasks); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := bridge.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(tasks, loaded); diff != "" {
			t.Errorf("round trip changed tasks (-want +got):\n%s", diff)
		}
	})

	t.Run("custom key", func(t *testing.T) {
		kv := NewMemoryKV()
		bridge := quietBridge(kv, WithKey("work"))
		if err := bridge.Save(ctx, []types.Task{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok, _ := kv.Get(ctx, DefaultKey); ok {
			t.Error("default key should be untouched")
		}
		if _, ok, _ := kv.Get(ctx, "work"); !ok {
			t.Error("custom key should be written")
		}
	})

	t.Run("backend error is returned", func(t *testing.T) {
		kv := NewMemoryKV()
		kv.SetError = errors.New("quota exceeded")
		err := quietBridge(kv).Save(ctx, []types.Task{})
		if !errors.Is(err, kv.SetError) {
			t.Fatalf("expected wrapped backend error, got %v", err)
		}
	})
}

func TestMemoryKVClosed(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Close()

	if _, _, err := kv.Get(context.Background(), "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := kv.Set(context.Background(), "x", "y"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
