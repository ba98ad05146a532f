// Package store provides the durable key-value backends a task collection
// can be persisted through.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Open returns the named backend rooted at dir.
func Open(backend, dir string, logger *slog.Logger) (storage.KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileKV(dir, WithFileLogger(logger))
	case BackendSQLite:
		return NewSQLiteKVInDir(dir, logger)
	case BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected one of %s)", backend, strings.Join(Backends, ", "))
	}
}
