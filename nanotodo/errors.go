package nanotodo

import "errors"

var (
	// ErrNotFound is returned when no task has the requested identifier.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguousID is returned when an identifier prefix matches more than
	// one task.
	ErrAmbiguousID = errors.New("task id is ambiguous")

	// ErrPersist wraps backend write failures. The in-memory change that
	// triggered the write has already been applied when it is returned.
	ErrPersist = errors.New("failed to persist tasks")
)
