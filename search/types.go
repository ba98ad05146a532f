// Package search finds tasks by their text or due date and ranks the
// matches.
package search

import "github.com/arthur-debert/nanotodo/types"

// Field names a searchable task field
type Field string

const (
	FieldText    Field = "text"
	FieldDueDate Field = "dueDate"
)

// Options configures search behavior
type Options struct {
	// Query is the search term to look for
	Query string

	// Fields specifies which fields to search in.
	// Empty slice searches all fields
	Fields []Field

	// CaseSensitive controls whether search is case-sensitive
	CaseSensitive bool

	// ExactMatch requires the entire field to match the query
	// When false, performs partial/substring matching
	ExactMatch bool

	// EnableHighlight includes highlighted match text in results
	EnableHighlight bool

	// Highlight markers, "**" when empty
	HighlightStartMarker string
	HighlightEndMarker   string

	// MaxResults limits the number of results; zero means no limit
	MaxResults int
}

// Result represents a search match with metadata
type Result struct {
	Task types.Task

	// Score represents match relevance (0.0 to 1.0, higher is better)
	Score float64

	// Highlights holds the field text with match markers, keyed by field
	Highlights map[Field]string

	// MatchType describes the best match found
	MatchType MatchType

	// MatchedFields lists all fields that contained matches
	MatchedFields []Field
}

// MatchType indicates the type of match found
type MatchType string

const (
	MatchExactText   MatchType = "exact_text"
	MatchPartialText MatchType = "partial_text"
	MatchDueDate     MatchType = "due_date"
)

// TaskProvider supplies the tasks to search, already filtered and ordered
// by view. Keeping it an interface lets tests search a fixed slice.
type TaskProvider interface {
	Tasks(view types.ViewOptions) ([]types.Task, error)
}

// Searcher defines the main search interface
type Searcher interface {
	Search(options Options, view types.ViewOptions) ([]Result, error)
}
