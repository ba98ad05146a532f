// Package query derives the read-only, ordered view of a task collection from
// the active filter and sort selection. The source slice is never mutated.
package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arthur-debert/nanotodo/types"
)

// DefaultLocale is used for lexical ordering when none is configured.
const DefaultLocale = "ja"

// Processor applies filters and ordering. A Processor owns a collator and is
// not safe for concurrent use.
type Processor struct {
	collator *collate.Collator
}

// NewProcessor creates a processor whose alphabetical ordering follows the
// given BCP 47 locale. An unparsable locale falls back to DefaultLocale.
func NewProcessor(locale string) *Processor {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Processor{
		collator: collate.New(tag),
	}
}

// Result is a derived view plus the size of the collection it came from, so
// callers can tell "no tasks at all" apart from "the filter hides them all".
type Result struct {
	Tasks   []types.Task
	Total   int
	Options types.ViewOptions
}

// EmptyState classifies why a view is empty.
type EmptyState int

const (
	// EmptyNone means the view has at least one task.
	EmptyNone EmptyState = iota
	// EmptyNoTasks means the collection itself is empty.
	EmptyNoTasks
	// EmptyAllCompleted means the active filter hides a fully completed list.
	EmptyAllCompleted
	// EmptyNoneCompleted means the completed filter found nothing.
	EmptyNoneCompleted
)

// EmptyState reports which empty-state message applies to the result.
func (r Result) EmptyState() EmptyState {
	switch {
	case r.Total == 0:
		return EmptyNoTasks
	case len(r.Tasks) > 0:
		return EmptyNone
	case r.Options.Filter == types.FilterActive:
		return EmptyAllCompleted
	default:
		return EmptyNoneCompleted
	}
}

// Execute filters then sorts a copy of tasks.
func (p *Processor) Execute(tasks []types.Task, opts types.ViewOptions) Result {
	view := Filter(tasks, opts.Filter)
	p.Sort(view, opts.SortBy, opts.Order)
	return Result{
		Tasks:   view,
		Total:   len(tasks),
		Options: opts,
	}
}
