package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

// AssertTaskCount checks that the slice contains the expected number of tasks
func AssertTaskCount(t *testing.T, tasks []types.Task, expected int, context ...string) {
	t.Helper()
	if len(tasks) != expected {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d tasks%s, got %d", expected, ctx, len(tasks))
	}
}

// AssertTaskExists verifies that a task with the given id is in the slice
func AssertTaskExists(t *testing.T, tasks []types.Task, id string) {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return
		}
	}
	t.Errorf("task %s not found in results", id)
}

// AssertTaskNotExists verifies that no task with the given id is in the slice
func AssertTaskNotExists(t *testing.T, tasks []types.Task, id string) {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			t.Errorf("task %s should not be in results", id)
			return
		}
	}
}

// AssertOrder verifies the ids of tasks, in order
func AssertOrder(t *testing.T, tasks []types.Task, ids ...string) {
	t.Helper()
	if len(tasks) != len(ids) {
		t.Errorf("expected %d tasks, got %d", len(ids), len(tasks))
		return
	}
	for i, task := range tasks {
		if task.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], task.ID)
		}
	}
}

// AssertAllCompleted verifies every task has the given completion flag
func AssertAllCompleted(t *testing.T, tasks []types.Task, completed bool) {
	t.Helper()
	for _, task := range tasks {
		if task.Completed != completed {
			t.Errorf("task %s: expected completed=%v", task.ID, completed)
		}
	}
}

// StoredTasks decodes what is persisted under the default key of kv
func StoredTasks(t *testing.T, kv storage.KV) []types.Task {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), storage.DefaultKey)
	if err != nil {
		t.Fatalf("failed to read stored tasks: %v", err)
	}
	if !ok {
		return nil
	}
	var tasks []types.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		t.Fatalf("stored tasks are not valid JSON: %v", err)
	}
	return tasks
}
