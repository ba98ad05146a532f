package store

import (
	"log/slog"
	"time"
)

// FileKVOption is a function that modifies FileKV configuration
type FileKVOption func(*FileKV)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) FileKVOption {
	return func(s *FileKV) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) FileKVOption {
	return func(s *FileKV) {
		s.lockFactory = factory
	}
}

// WithLockTimeout bounds how long a read or write waits for the key lock
func WithLockTimeout(d time.Duration) FileKVOption {
	return func(s *FileKV) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithFileLogger sets the logger for lock and write diagnostics
func WithFileLogger(logger *slog.Logger) FileKVOption {
	return func(s *FileKV) {
		if logger != nil {
			s.logger = logger
		}
	}
}
