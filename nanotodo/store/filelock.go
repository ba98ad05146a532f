package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is the cross-process lock taken around every read and write of a
// key file.
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock, polling every
	// retryInterval until ctx is done.
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock
	Unlock() error

	// Path returns the lock file path
	Path() string
}

// FileLockFactory creates FileLock instances
type FileLockFactory interface {
	New(path string) FileLock
}

// flockLock adapts github.com/gofrs/flock to FileLock
type flockLock struct {
	*flock.Flock
}

// FlockFactory is the default factory, backed by flock(2)
type FlockFactory struct{}

// New implements FileLockFactory.New
func (FlockFactory) New(path string) FileLock {
	return flockLock{Flock: flock.New(path)}
}
