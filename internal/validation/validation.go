// Package validation enforces the input-boundary rules for task text and due
// dates. Stored records are never validated: legacy data may lack a due date.
package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/arthur-debert/nanotodo/types"
)

// Field names the input that failed validation.
type Field string

const (
	FieldText    Field = "text"
	FieldDueDate Field = "dueDate"
)

// Error is a field-specific, user-visible validation failure.
type Error struct {
	Field   Field
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same field and message, so callers can use
// errors.Is against the exported values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Field == t.Field && e.Message == t.Message
}

var (
	ErrTextRequired    = &Error{Field: FieldText, Message: "Task name is required"}
	ErrDueDateRequired = &Error{Field: FieldDueDate, Message: "Due date is required"}
	ErrDueDateInvalid  = &Error{Field: FieldDueDate, Message: "Due date must be a valid date (YYYY-MM-DD)"}
)

// ValidateText trims the text and rejects it when nothing remains.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrTextRequired
	}
	return trimmed, nil
}

// ValidateDueDate requires a calendar date in YYYY-MM-DD form.
func ValidateDueDate(due string) (string, error) {
	due = strings.TrimSpace(due)
	if due == "" {
		return "", ErrDueDateRequired
	}
	if _, err := time.Parse(types.DateLayout, due); err != nil {
		return "", ErrDueDateInvalid
	}
	return due, nil
}

// ValidateInput checks text before the due date, so input missing both is
// reported solely as missing text.
func ValidateInput(text, due string) (string, string, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		return "", "", err
	}
	d, err := ValidateDueDate(due)
	if err != nil {
		return "", "", err
	}
	return trimmed, d, nil
}

// FieldOf returns the failing field of a validation error, or "" when err is
// not one.
func FieldOf(err error) Field {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}
