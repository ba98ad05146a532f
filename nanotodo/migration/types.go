package migration

import "time"

// MessageLevel represents the severity of a message
type MessageLevel int

const (
	LevelDebug MessageLevel = iota
	LevelInfo
	LevelWarning
)

func (l MessageLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	default:
		return "warning"
	}
}

// Message represents a single output message from a migration
type Message struct {
	Level   MessageLevel
	Text    string
	Details map[string]interface{} // Optional structured data
}

// Result encapsulates the outcome of a migration run
type Result struct {
	Messages      []Message
	ModifiedTasks []string // IDs of normalized tasks
	Stats         Stats
}

// Stats provides migration statistics
type Stats struct {
	TotalTasks    int
	ModifiedTasks int
	SkippedTasks  int
	Duration      time.Duration
}

// Warnings returns the warning-level messages.
func (r *Result) Warnings() []Message {
	var out []Message
	for _, m := range r.Messages {
		if m.Level == LevelWarning {
			out = append(out, m)
		}
	}
	return out
}

// Changed reports whether any record was rewritten.
func (r *Result) Changed() bool {
	return r.Stats.ModifiedTasks > 0
}

func (r *Result) add(level MessageLevel, text string, details map[string]interface{}) {
	r.Messages = append(r.Messages, Message{Level: level, Text: text, Details: details})
}
