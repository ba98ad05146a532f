package storage

import (
	"context"
)

// MemoryKV keeps values in a map. It backs tests and the --backend=memory
// mode, where nothing survives the process.
type MemoryKV struct {
	lm     *LockManager
	values map[string]string
	closed bool

	// Optional errors for simulating backend failures
	GetError error
	SetError error
}

// NewMemoryKV returns an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		lm:     NewLockManager(),
		values: make(map[string]string),
	}
}

// Get implements KV.Get
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		ok    bool
	)
	err := m.lm.Execute(ReadOperation, func() error {
		if m.closed {
			return ErrClosed
		}
		if m.GetError != nil {
			return m.GetError
		}
		value, ok = m.values[key]
		return nil
	})
	return value, ok, err
}

// Set implements KV.Set
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.lm.Execute(WriteOperation, func() error {
		if m.closed {
			return ErrClosed
		}
		if m.SetError != nil {
			return m.SetError
		}
		m.values[key] = value
		return nil
	})
}

// Close implements KV.Close
func (m *MemoryKV) Close() error {
	return m.lm.Execute(WriteOperation, func() error {
		m.closed = true
		return nil
	})
}
