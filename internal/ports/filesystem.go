package ports

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo contains file metadata.
type FileInfo struct {
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
}

// FileSystem provides the file operations used by built-in actions.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Rename(oldPath, newPath string) error
	CopyFile(src, dest string) error
	FileHash(path string) (string, error)
	GetFileInfo(path string) (FileInfo, error)
	Chtimes(path string, atime, mtime time.Time) error
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolvePath expands ~ and joins relative paths onto root.
// An empty root leaves relative paths relative to the process directory.
func ResolvePath(root, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
