package mocks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// FileSystem is a thread-safe in-memory test double for ports.FileSystem.
// Paths are cleaned before use so "a/./b" and "a/b" refer to the same entry.
type FileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	mtimes map[string]time.Time
	now    func() time.Time
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		mtimes: make(map[string]time.Time),
		now:    time.Now,
	}
}

// SetClock overrides the time source used for modification times.
func (fs *FileSystem) SetClock(now func() time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.now = now
}

// AddFile adds a file and its parent directories to the mock filesystem.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.files[path] = []byte(content)
	fs.mtimes[path] = fs.now()
	fs.addDirs(filepath.Dir(path))
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.dirs[path] = true
	fs.mtimes[path] = fs.now()
}

// Files returns the sorted paths of every file in the mock filesystem.
func (fs *FileSystem) Files() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return content, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

// WriteFile writes a file to the mock filesystem.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	if fs.dirs[path] {
		return fmt.Errorf("is a directory: %s", path)
	}
	fs.files[path] = append([]byte(nil), data...)
	fs.mtimes[path] = fs.now()
	return nil
}

// Exists checks if a file or directory exists in the mock filesystem.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	path = filepath.Clean(path)
	_, fileExists := fs.files[path]
	return fileExists || fs.dirs[path]
}

// IsDir checks if a path is a directory in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[filepath.Clean(path)]
}

// MkdirAll creates a directory and its parents in the mock filesystem.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := fs.files[path]; ok {
		return fmt.Errorf("not a directory: %s", path)
	}
	fs.addDirs(path)
	return nil
}

// addDirs records path and every ancestor as directories. Callers hold fs.mu.
func (fs *FileSystem) addDirs(path string) {
	for p := path; ; p = filepath.Dir(p) {
		if !fs.dirs[p] {
			fs.dirs[p] = true
			fs.mtimes[p] = fs.now()
		}
		if parent := filepath.Dir(p); parent == p {
			return
		}
	}
}

// RemoveAll removes a path and everything below it. Missing paths are not an error.
func (fs *FileSystem) RemoveAll(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)
	for p := range fs.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(fs.files, p)
			delete(fs.mtimes, p)
		}
	}
	for p := range fs.dirs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(fs.dirs, p)
			delete(fs.mtimes, p)
		}
	}
	return nil
}

// Rename renames a file in the mock filesystem.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	oldPath, newPath = filepath.Clean(oldPath), filepath.Clean(newPath)
	content, ok := fs.files[oldPath]
	if !ok {
		return fmt.Errorf("file not found: %s", oldPath)
	}
	fs.files[newPath] = content
	fs.mtimes[newPath] = fs.mtimes[oldPath]
	delete(fs.files, oldPath)
	delete(fs.mtimes, oldPath)
	return nil
}

// CopyFile copies a file in the mock filesystem.
func (fs *FileSystem) CopyFile(src, dest string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	content, ok := fs.files[filepath.Clean(src)]
	if !ok {
		return fmt.Errorf("file not found: %s", src)
	}
	dest = filepath.Clean(dest)
	fs.files[dest] = append([]byte(nil), content...)
	fs.mtimes[dest] = fs.now()
	return nil
}

// FileHash returns a SHA256 hash of a file in the mock filesystem.
func (fs *FileSystem) FileHash(path string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	content, ok := fs.files[filepath.Clean(path)]
	if !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:]), nil
}

// GetFileInfo returns metadata about a path in the mock filesystem.
func (fs *FileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	path = filepath.Clean(path)

	if content, ok := fs.files[path]; ok {
		return ports.FileInfo{
			Size:    int64(len(content)),
			Mode:    0o644,
			ModTime: fs.mtimes[path],
		}, nil
	}

	if fs.dirs[path] {
		return ports.FileInfo{
			Mode:    os.ModeDir | 0o755,
			ModTime: fs.mtimes[path],
			IsDir:   true,
		}, nil
	}

	return ports.FileInfo{}, fmt.Errorf("file not found: %s", path)
}

// Chtimes sets the modification time of an existing path.
func (fs *FileSystem) Chtimes(path string, _, mtime time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	_, isFile := fs.files[path]
	if !isFile && !fs.dirs[path] {
		return fmt.Errorf("file not found: %s", path)
	}
	fs.mtimes[path] = mtime
	return nil
}

// Reset clears all files and directories.
func (fs *FileSystem) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files = make(map[string][]byte)
	fs.dirs = make(map[string]bool)
	fs.mtimes = make(map[string]time.Time)
}

var _ ports.FileSystem = (*FileSystem)(nil)
