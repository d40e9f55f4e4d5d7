package ports

import (
	"fmt"
	"os"
)

// EnterDir switches the process working directory to dir and returns a
// function that switches back. An empty dir is a no-op.
// Only safe while nothing else in the process depends on the working directory.
func EnterDir(dir string) (restore func() error, err error) {
	if dir == "" {
		return func() error { return nil }, nil
	}
	original, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	return func() error {
		if err := os.Chdir(original); err != nil {
			return fmt.Errorf("failed to restore working directory %s: %w", original, err)
		}
		return nil
	}, nil
}
