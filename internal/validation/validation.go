// Package validation checks names, paths and URLs taken from build files before
// they reach the file system or the network.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput        = errors.New("input cannot be empty")
	ErrInvalidTargetName = errors.New("invalid target name")
	ErrPathTraversal     = errors.New("path traversal detected")
	ErrInvalidPath       = errors.New("invalid path")
	ErrInvalidURL        = errors.New("invalid URL")
)

const (
	maxNameLength = 256
	maxURLLength  = 2048
)

// printableRegex matches strings without control characters.
var printableRegex = regexp.MustCompile(`^[^\x00-\x1f\x7f]*$`)

// ValidateTargetName validates a target or dependency name.
// Names are free-form but must be printable and carry no surrounding spaces.
func ValidateTargetName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name too long", ErrInvalidTargetName)
	}

	if !printableRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidTargetName, name)
	}

	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has leading or trailing spaces", ErrInvalidTargetName, name)
	}

	return nil
}

// ValidateRelativePath validates a path that must stay below the directory
// it is resolved against, such as a sub-project name.
func ValidateRelativePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}

	if !printableRegex.MatchString(path) {
		return fmt.Errorf("%w: path contains control characters", ErrInvalidPath)
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must be relative", ErrInvalidPath, path)
	}

	if containsPathTraversal(path) {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, path)
	}

	return nil
}

// ValidateURL validates an absolute HTTP or HTTPS URL.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyInput
	}

	if len(urlStr) > maxURLLength {
		return fmt.Errorf("%w: URL too long", ErrInvalidURL)
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must be a valid HTTP/HTTPS URL", ErrInvalidURL, urlStr)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, urlStr)
	}

	return nil
}

// containsPathTraversal checks for common path traversal patterns.
func containsPathTraversal(path string) bool {
	normalized := filepath.ToSlash(filepath.Clean(path))
	for _, seg := range strings.Split(normalized, "/") {
		if seg == ".." {
			return true
		}
	}

	// URL-encoded traversal
	lower := strings.ToLower(path)
	return strings.Contains(lower, "%2e%2e")
}
