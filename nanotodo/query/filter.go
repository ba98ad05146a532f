package query

import "github.com/arthur-debert/nanotodo/types"

// Filter returns a new slice with the tasks that pass f. The "all" filter
// still copies, so the result is always safe to reorder.
func Filter(tasks []types.Task, f types.Filter) []types.Task {
	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many tasks pass f.
func Count(tasks []types.Task, f types.Filter) int {
	n := 0
	for _, t := range tasks {
		if f.Match(t) {
			n++
		}
	}
	return n
}
