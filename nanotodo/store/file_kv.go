package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
)

// Constants for file locking
const (
	defaultLockTimeout = 3 * time.Second
	lockMaxRetries     = 3
	lockRetryDelay     = 100 * time.Millisecond
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ErrInvalidKey is returned for keys that cannot be used as file names.
var ErrInvalidKey = errors.New("store: key must match [A-Za-z0-9._-]+")

// FileKV stores each key as <dir>/<key>.json. Every access takes a flock on
// <dir>/<key>.json.lock, and writes go through a temp file and rename so a
// reader never sees a partial value.
type FileKV struct {
	dir         string
	fs          FileSystem
	lockFactory FileLockFactory
	lockTimeout time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	locks  map[string]FileLock
	closed bool
}

var _ storage.KV = (*FileKV)(nil)

// NewFileKV creates the data directory if needed and returns a file backend
// rooted at it.
func NewFileKV(dir string, opts ...FileKVOption) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	kv := &FileKV{
		dir:         dir,
		lockTimeout: defaultLockTimeout,
		logger:      slog.Default(),
		locks:       make(map[string]FileLock),
	}
	for _, opt := range opts {
		opt(kv)
	}
	if kv.fs == nil {
		kv.fs = OSFileSystem{}
	}
	if kv.lockFactory == nil {
		kv.lockFactory = FlockFactory{}
	}

	if err := kv.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return kv, nil
}

// Dir returns the data directory.
func (s *FileKV) Dir() string {
	return s.dir
}

// Path returns the file a key is stored in.
func (s *FileKV) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements storage.KV.Get
func (s *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.withLock(ctx, key, func(path string) error {
		if _, err := s.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		value, ok = string(data), true
		return nil
	})
	return value, ok, err
}

// Set implements storage.KV.Set
func (s *FileKV) Set(ctx context.Context, key, value string) error {
	return s.withLock(ctx, key, func(path string) error {
		tmpFile := path + ".tmp"
		if err := s.fs.WriteFile(tmpFile, []byte(value), 0o644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := s.fs.Rename(tmpFile, path); err != nil {
			_ = s.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		s.logger.Debug("wrote key", "key", key, "bytes", len(value))
		return nil
	})
}

// Close removes the lock files this backend created.
func (s *FileKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for _, lock := range s.locks {
		_ = s.fs.Remove(lock.Path())
	}
	s.locks = nil
	return nil
}

func (s *FileKV) withLock(ctx context.Context, key string, fn func(path string) error) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	lock, err := s.lockFor(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	if err := acquireLock(ctx, lock); err != nil {
		s.logger.Warn("could not lock key", "key", key, "error", err)
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return fn(s.Path(key))
}

func (s *FileKV) lockFor(key string) (FileLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, storage.ErrClosed
	}
	lock, ok := s.locks[key]
	if !ok {
		lock = s.lockFactory.New(s.Path(key) + ".lock")
		s.locks[key] = lock
	}
	return lock, nil
}

// acquireLock attempts to acquire an exclusive file lock with retry logic
func acquireLock(ctx context.Context, lock FileLock) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}
