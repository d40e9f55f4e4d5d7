// Package ui provides shared styles and key bindings for TUI components.
package ui

// Default component dimensions.
const (
	// DefaultWidth is the width used before the first window size message.
	DefaultWidth = 80

	// DefaultHeight is the height used before the first window size message.
	DefaultHeight = 24

	// DefaultListHeight is the number of list rows shown at once.
	DefaultListHeight = 15
)
