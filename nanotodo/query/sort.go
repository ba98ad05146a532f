package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

// Sort orders tasks in place. The comparator produces the base ordering and
// the direction is applied afterwards, except that tasks without a due date
// always trail dated tasks when sorting by due date. The sort is stable.
func (p *Processor) Sort(tasks []types.Task, key types.SortKey, order types.SortOrder) {
	slices.SortStableFunc(tasks, func(a, b types.Task) int {
		c, fixed := p.compare(a, b, key)
		if fixed || order == types.Ascending {
			return c
		}
		return -c
	})
}

// compare returns the base ordering of a and b. fixed is true when the result
// must not be negated for descending order.
func (p *Processor) compare(a, b types.Task, key types.SortKey) (c int, fixed bool) {
	switch key {
	case types.SortDueDate:
		return compareDueDates(a, b)
	case types.SortAlphabetical:
		return p.collator.CompareString(a.Text, b.Text), false
	case types.SortCreatedAt:
		return cmp.Compare(a.CreatedAt, b.CreatedAt), false
	default:
		return 0, false
	}
}

func compareDueDates(a, b types.Task) (int, bool) {
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return cmp.Compare(a.CreatedAt, b.CreatedAt), false
	case !a.HasDueDate():
		return 1, true
	case !b.HasDueDate():
		return -1, true
	}

	da, okA := a.Due(time.UTC)
	db, okB := b.Due(time.UTC)
	if okA && okB {
		return da.Compare(db), false
	}
	// Unparsable legacy values keep a deterministic place.
	return strings.Compare(a.DueDate, b.DueDate), false
}
