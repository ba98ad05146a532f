// Package storage persists a task collection as a single JSON array under
// one key of a string key-value backend.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the key the collection is stored under.
const DefaultKey = "todos"

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: backend closed")

// KV is a synchronous string key-value store. Implementations live in the
// store package (file and SQLite) and here (memory).
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the backend.
	Close() error
}
