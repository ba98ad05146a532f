package store

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-process FileLock for tests
type MockFileLock struct {
	mu          sync.Mutex
	path        string
	isLocked    bool
	lockError   error
	unlockError error

	// For tracking lock attempts
	LockAttempts   int
	UnlockAttempts int
}

// TryLockContext implements FileLock.TryLockContext
func (m *MockFileLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LockAttempts++

	if m.lockError != nil {
		return false, m.lockError
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.isLocked {
		return false, nil
	}

	m.isLocked = true
	return true, nil
}

// Unlock implements FileLock.Unlock
func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnlockAttempts++

	if m.unlockError != nil {
		return m.unlockError
	}

	m.isLocked = false
	return nil
}

// Path implements FileLock.Path
func (m *MockFileLock) Path() string {
	return m.path
}

// IsLocked returns whether the lock is currently held
func (m *MockFileLock) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLocked
}

// Hold marks the lock as taken by someone else
func (m *MockFileLock) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isLocked = true
}

// MockFileLockFactory hands out one MockFileLock per path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock

	// Errors injected into every new lock
	DefaultLockError   error
	DefaultUnlockError error
}

// NewMockFileLockFactory creates a new mock factory
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{
		locks: make(map[string]*MockFileLock),
	}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock lock for path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lock, exists := f.locks[path]; exists {
		return lock
	}
	lock := &MockFileLock{
		path:        path,
		lockError:   f.DefaultLockError,
		unlockError: f.DefaultUnlockError,
	}
	f.locks[path] = lock
	return lock
}
