package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Errors to simulate failures
	StatError      error
	ReadFileError  error
	WriteFileError error
	RenameError    error
	RemoveError    error
	MkdirError     error

	// Writes counts WriteFile calls
	Writes int
}

type mockFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi mockFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates a new mock file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// Stat implements FileSystem.Stat
func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	if m.StatError != nil {
		return nil, m.StatError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.dirs[name] {
		return mockFileInfo{name: filepath.Base(name), mode: fs.ModeDir | 0o755}, nil
	}
	file, exists := m.files[name]
	if !exists {
		return nil, os.ErrNotExist
	}
	return mockFileInfo{
		name:    filepath.Base(name),
		size:    int64(len(file.content)),
		mode:    file.mode,
		modTime: file.modTime,
	}, nil
}

// ReadFile implements FileSystem.ReadFile
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[name]
	if !exists {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), file.content...), nil
}

// WriteFile implements FileSystem.WriteFile
func (m *MockFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Writes++
	m.files[name] = &mockFile{
		content: append([]byte(nil), data...),
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// Rename implements FileSystem.Rename
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	file, exists := m.files[oldpath]
	if !exists {
		return os.ErrNotExist
	}
	m.files[newpath] = file
	delete(m.files, oldpath)
	return nil
}

// Remove implements FileSystem.Remove
func (m *MockFileSystem) Remove(name string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[name]; !exists {
		return os.ErrNotExist
	}
	delete(m.files, name)
	return nil
}

// MkdirAll implements FileSystem.MkdirAll
func (m *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirError != nil {
		return m.MkdirError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for dir := filepath.Clean(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	return nil
}

// FileExists reports whether name was written
func (m *MockFileSystem) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[name]
	return exists
}

// GetFileContent returns a copy of the content of name
func (m *MockFileSystem) GetFileContent(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[name]
	if !exists {
		return nil, false
	}
	return append([]byte(nil), file.content...), true
}

// SetFileContent seeds a file
func (m *MockFileSystem) SetFileContent(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &mockFile{content: append([]byte(nil), content...), mode: 0o644, modTime: time.Now()}
}
