package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/arthur-debert/nanotodo/types"
)

// Engine implements the Searcher interface
type Engine struct {
	provider TaskProvider
}

// NewEngine creates a new search engine with the given task provider
func NewEngine(provider TaskProvider) *Engine {
	return &Engine{
		provider: provider,
	}
}

// Search returns the tasks matching options.Query, best match first. Ties
// keep the order of the view.
func (e *Engine) Search(options Options, view types.ViewOptions) ([]Result, error) {
	if options.Query == "" {
		return []Result{}, nil
	}

	tasks, err := e.provider.Tasks(view)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	results := []Result{}
	for _, task := range tasks {
		if result := e.searchTask(task, options); result != nil {
			results = append(results, *result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}

	return results, nil
}

// searchTask returns a result if any searched field of task matches
func (e *Engine) searchTask(task types.Task, options Options) *Result {
	fields := options.Fields
	if len(fields) == 0 {
		fields = []Field{FieldText, FieldDueDate}
	}

	startMarker := options.HighlightStartMarker
	endMarker := options.HighlightEndMarker
	if startMarker == "" {
		startMarker = "**"
	}
	if endMarker == "" {
		endMarker = "**"
	}

	var result *Result
	for _, field := range fields {
		value, base, ok := fieldValue(task, field)
		if !ok {
			continue
		}
		spans, matchType := findMatches(value, options, base)
		if len(spans) == 0 {
			continue
		}

		score := calculateScore(value, options, field, matchType)
		if result == nil {
			result = &Result{Task: task}
		}
		result.MatchedFields = append(result.MatchedFields, field)
		if score > result.Score {
			result.Score = score
			result.MatchType = matchType
		}
		if options.EnableHighlight {
			if result.Highlights == nil {
				result.Highlights = make(map[Field]string)
			}
			result.Highlights[field] = highlight(value, spans, startMarker, endMarker)
		}
	}
	return result
}

func fieldValue(task types.Task, field Field) (string, MatchType, bool) {
	switch field {
	case FieldText:
		return task.Text, MatchPartialText, true
	case FieldDueDate:
		if !task.HasDueDate() {
			return "", "", false
		}
		return task.DueDate, MatchDueDate, true
	default:
		return "", "", false
	}
}

// span is a match position in runes, end exclusive
type span struct{ start, end int }

// findMatches locates non-overlapping occurrences of the query. Positions
// are rune offsets so highlighting never splits a multi-byte character.
func findMatches(value string, options Options, base MatchType) ([]span, MatchType) {
	text := []rune(value)
	query := []rune(options.Query)
	if !options.CaseSensitive {
		text = lowerRunes(text)
		query = lowerRunes(query)
	}
	if len(query) == 0 {
		return nil, base
	}

	if options.ExactMatch {
		if string(text) != string(query) {
			return nil, base
		}
		matchType := base
		if base == MatchPartialText {
			matchType = MatchExactText
		}
		return []span{{0, len(text)}}, matchType
	}

	var spans []span
	for i := 0; i+len(query) <= len(text); i++ {
		if string(text[i:i+len(query)]) == string(query) {
			spans = append(spans, span{i, i + len(query)})
			// Skip overlapping matches
			i += len(query) - 1
		}
	}
	return spans, base
}

// calculateScore computes a relevance score for a match
func calculateScore(value string, options Options, field Field, matchType MatchType) float64 {
	if matchType == MatchExactText {
		return 1.0
	}

	baseScore := 0.5
	if field == FieldText {
		baseScore = 0.7
	}

	text, query := value, options.Query
	if !options.CaseSensitive {
		text, query = strings.ToLower(text), strings.ToLower(query)
	}

	// Boost if match is at the beginning
	if strings.HasPrefix(text, query) {
		baseScore += 0.2
	}

	// Boost if query takes up a large portion of the field
	if n := len([]rune(text)); n > 0 {
		coverage := float64(len([]rune(query))) / float64(n)
		if coverage > 0.5 {
			baseScore += 0.1
		}
	}

	return min(baseScore, 1.0)
}

// highlight wraps every span of value in the markers
func highlight(value string, spans []span, startMarker, endMarker string) string {
	text := []rune(value)
	var builder strings.Builder
	lastEnd := 0
	for _, s := range spans {
		builder.WriteString(string(text[lastEnd:s.start]))
		builder.WriteString(startMarker)
		builder.WriteString(string(text[s.start:s.end]))
		builder.WriteString(endMarker)
		lastEnd = s.end
	}
	builder.WriteString(string(text[lastEnd:]))
	return builder.String()
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}
