package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/nanotodo"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add", "toggle")
	Cause       string   // The underlying cause (e.g., "task not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError reports an input the collection rejected. The cause is
// the field message shown to users in every other surface.
func NewValidationError(operation string, err *validation.Error) *CLIError {
	suggestions := []string{CommonSuggestions.RunHelp}
	if err.Field == validation.FieldDueDate {
		suggestions = []string{"Pass the due date as --due YYYY-MM-DD"}
	}
	return &CLIError{
		Operation:   operation,
		Cause:       err.Message,
		Suggestions: suggestions,
		Underlying:  err,
	}
}

// NewNotFoundError creates an error for an unknown task ID
func NewNotFoundError(operation, id string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("task with ID %q not found", id),
		Suggestions: []string{CommonSuggestions.CheckID},
		Underlying:  nanotodo.ErrNotFound,
	}
}

// NewAmbiguousError creates an error for a prefix matching several tasks
func NewAmbiguousError(operation, prefix string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("ID prefix %q matches more than one task", prefix),
		Suggestions: []string{"Type more characters of the ID", CommonSuggestions.CheckID},
		Underlying:  nanotodo.ErrAmbiguousID,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation string, underlying error) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %v", underlying),
		Suggestions: []string{CommonSuggestions.CheckConfig, CommonSuggestions.CheckFlags},
		Underlying:  underlying,
	}
}

// NewStoreError creates an error for storage failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case errors.Is(underlying, nanotodo.ErrPersist):
			cause = "the change could not be saved"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the data directory"
		case strings.Contains(errStr, "database is locked"), strings.Contains(errStr, "failed to acquire lock"):
			cause = "the task list is currently locked by another process"
		case strings.Contains(errStr, "no such file"):
			cause = "data file not found"
		}
	}

	if len(suggestions) == 0 {
		suggestions = []string{CommonSuggestions.CheckDataDir, CommonSuggestions.CheckPerms}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context. id is the
// user-supplied identifier, if any.
func WrapError(operation, id string, err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		return NewValidationError(operation, vErr)
	case errors.Is(err, nanotodo.ErrNotFound):
		return NewNotFoundError(operation, id)
	case errors.Is(err, nanotodo.ErrAmbiguousID):
		return NewAmbiguousError(operation, id)
	}
	return NewStoreError(operation, err)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckID      string
		CheckDataDir string
		CheckConfig  string
		CheckFlags   string
		RunHelp      string
		CheckPerms   string
		TryDryRun    string
	}{
		CheckID:      "Verify the task ID exists (try 'list' command first)",
		CheckDataDir: "Verify --data-dir points to a writable directory",
		CheckConfig:  "Check your configuration file or environment variables",
		CheckFlags:   "Check command line flags and their values",
		RunHelp:      "Run command with --help for usage information",
		CheckPerms:   "Check file permissions and directory access",
		TryDryRun:    "Use --dry-run to preview the operation",
	}
)
