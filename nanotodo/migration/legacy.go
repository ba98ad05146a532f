// Package migration normalizes task records written by older schema versions
// so that legacy data stays displayable.
package migration

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/nanotodo/types"
)

// LegacyTask is the most permissive reading of a stored record. Older
// versions omitted updatedAt and dueDate; JSON numbers are read as floats so
// a fractional timestamp does not reject the whole collection.
type LegacyTask struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	CreatedAt float64  `json:"createdAt"`
	UpdatedAt *float64 `json:"updatedAt,omitempty"`
	DueDate   *string  `json:"dueDate,omitempty"`
}

// NormalizeLegacy converts raw records into tasks, defaulting a missing (or
// zero) modified timestamp to the creation timestamp and a missing due date
// to the empty string. Records without an id, or repeating an earlier id, get
// a fresh one so every task stays addressable. Due dates that do not parse are
// kept as they are and reported as warnings. The input is not modified.
func NormalizeLegacy(records []LegacyTask) ([]types.Task, *Result) {
	start := time.Now()
	result := &Result{
		Stats: Stats{
			TotalTasks: len(records),
		},
	}

	seen := make(map[string]bool, len(records))
	tasks := make([]types.Task, 0, len(records))
	for _, rec := range records {
		task := types.Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			CreatedAt: toMillis(rec.CreatedAt),
		}

		var defaulted []string
		switch {
		case task.ID == "":
			task.ID = uuid.NewString()
			defaulted = append(defaulted, "id")
			result.add(LevelWarning, fmt.Sprintf("Task %q had no id, assigned %s", task.Text, task.ID), nil)
		case seen[task.ID]:
			task.ID = uuid.NewString()
			defaulted = append(defaulted, "id")
			result.add(LevelWarning, fmt.Sprintf("Task %q repeated id %s, assigned %s", task.Text, rec.ID, task.ID), nil)
		}
		seen[task.ID] = true

		if rec.UpdatedAt == nil || toMillis(*rec.UpdatedAt) == 0 {
			task.UpdatedAt = task.CreatedAt
			defaulted = append(defaulted, "updatedAt")
		} else {
			task.UpdatedAt = toMillis(*rec.UpdatedAt)
		}
		if rec.DueDate == nil {
			defaulted = append(defaulted, "dueDate")
		} else {
			task.DueDate = *rec.DueDate
			if _, ok := task.Due(time.UTC); task.DueDate != "" && !ok {
				result.add(LevelWarning, fmt.Sprintf("Task %s has an unreadable due date %q", task.ID, task.DueDate), nil)
			}
		}

		if len(defaulted) > 0 {
			result.Stats.ModifiedTasks++
			result.ModifiedTasks = append(result.ModifiedTasks, task.ID)
			result.add(LevelDebug, fmt.Sprintf("Normalized task %s", task.ID), map[string]interface{}{
				"defaulted": defaulted,
			})
		} else {
			result.Stats.SkippedTasks++
		}
		tasks = append(tasks, task)
	}

	if result.Changed() {
		result.add(LevelInfo, fmt.Sprintf("Normalized %d of %d tasks", result.Stats.ModifiedTasks, result.Stats.TotalTasks), nil)
	} else {
		result.add(LevelInfo, "All tasks already use the current schema", nil)
	}
	result.Stats.Duration = time.Since(start)
	return tasks, result
}

func toMillis(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}
