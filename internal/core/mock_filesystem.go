package core

import (
	"context"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are implied by the files stored beneath them, so nested
// layouts can be walked with ReadDir.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Errors forces the named operation ("stat", "read", "readdir") to fail
	// for the given path.
	errors map[string]error
	reads  map[string]int
}

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		errors: make(map[string]error),
		reads:  make(map[string]int),
	}
}

// SetFile stores data at name, creating all parent directories.
func (m *MockFileSystem) SetFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	m.files[name] = data
	for dir := path.Dir(name); ; dir = path.Dir(dir) {
		m.dirs[dir] = true
		if dir == "/" || dir == "." {
			break
		}
	}
}

// MkdirAll records an empty directory and its parents.
func (m *MockFileSystem) MkdirAll(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dir := path.Clean(name); ; dir = path.Dir(dir) {
		m.dirs[dir] = true
		if dir == "/" || dir == "." {
			break
		}
	}
}

// RemoveAll deletes name and everything beneath it.
func (m *MockFileSystem) RemoveAll(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	prefix := name + "/"
	for f := range m.files {
		if f == name || strings.HasPrefix(f, prefix) {
			delete(m.files, f)
		}
	}
	for d := range m.dirs {
		if d == name || strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
}

// SetError makes op ("stat", "read" or "readdir") fail with err for name.
func (m *MockFileSystem) SetError(op, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[op+":"+path.Clean(name)] = err
}

// ReadCount reports how many times ReadFile was called for name.
func (m *MockFileSystem) ReadCount(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads[path.Clean(name)]
}

// Stat returns file info for a stored file or implied directory.
func (m *MockFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name = path.Clean(name)
	if err, ok := m.errors["stat:"+name]; ok {
		return nil, err
	}
	if data, ok := m.files[name]; ok {
		return mockFileInfo{name: path.Base(name), size: int64(len(data))}, nil
	}
	if m.dirs[name] {
		return mockFileInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile returns the stored contents of name.
func (m *MockFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	m.reads[name]++
	if err, ok := m.errors["read:"+name]; ok {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

// ReadDir lists the direct children of name, sorted by name.
func (m *MockFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name = path.Clean(name)
	if err, ok := m.errors["readdir:"+name]; ok {
		return nil, err
	}
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	seen := make(map[string]fs.DirEntry)
	for f, data := range m.files {
		if path.Dir(f) == name {
			base := path.Base(f)
			seen[base] = fs.FileInfoToDirEntry(mockFileInfo{name: base, size: int64(len(data))})
		}
	}
	for d := range m.dirs {
		if d != name && path.Dir(d) == name {
			base := path.Base(d)
			seen[base] = fs.FileInfoToDirEntry(mockFileInfo{name: base, dir: true})
		}
	}

	entries := make([]fs.DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string { return i.name }
func (i mockFileInfo) Size() int64  { return i.size }
func (i mockFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }
