package target

import (
	"fmt"
	"strings"
)

// Error codes for registry, resolution, execution and composition failures.
const (
	ErrCodeUnresolvedTarget   = "UNRESOLVED_TARGET"
	ErrCodeActionFailed       = "ACTION_FAILED"
	ErrCodeSubprojectNotFound = "SUBPROJECT_NOT_FOUND"
	ErrCodeCycleDetected      = "CYCLE_DETECTED"
	ErrCodeSubprojectCycle    = "SUBPROJECT_CYCLE"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrUnresolvedTarget   = &Error{Code: ErrCodeUnresolvedTarget}
	ErrActionFailed       = &Error{Code: ErrCodeActionFailed}
	ErrSubprojectNotFound = &Error{Code: ErrCodeSubprojectNotFound}
	ErrCycleDetected      = &Error{Code: ErrCodeCycleDetected}
	ErrSubprojectCycle    = &Error{Code: ErrCodeSubprojectCycle}
)

// Error is a user-facing build error with an actionable suggestion.
type Error struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	Target     string // Offending target name, if any
	Path       string // Offending file or directory, if any
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	var parts []string

	if e.Target != "" {
		parts = append(parts, fmt.Sprintf("target %q", e.Target))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path %q", e.Path))
	}

	msg := e.Message
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	if len(parts) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Target != "" {
		b.WriteString(fmt.Sprintf("\n  Target: %s", e.Target))
	}
	if e.Path != "" {
		b.WriteString(fmt.Sprintf("\n  Path: %s", e.Path))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  Suggestion: %s", e.Suggestion))
	}
	if e.Underlying != nil {
		b.WriteString(fmt.Sprintf("\n  Cause: %s", e.Underlying.Error()))
	}

	return b.String()
}

// WithSuggestion returns a copy of the error with the suggestion replaced.
func (e *Error) WithSuggestion(suggestion string) *Error {
	cp := *e
	cp.Suggestion = suggestion
	return &cp
}

// NewUnresolvedTargetError reports a requested or depended-upon name that is
// not registered.
func NewUnresolvedTargetError(name string) *Error {
	return &Error{
		Code:       ErrCodeUnresolvedTarget,
		Message:    "unresolved target",
		Target:     name,
		Suggestion: "Check the spelling, or run 'makeflow list' to see the registered targets.",
	}
}

// NewActionFailedError reports an action that returned an error or panicked.
func NewActionFailedError(name string, err error) *Error {
	return &Error{
		Code:       ErrCodeActionFailed,
		Message:    "action failed",
		Target:     name,
		Suggestion: "Fix the failing action and run the build again; earlier targets are not rolled back.",
		Underlying: err,
	}
}

// NewSubprojectNotFoundError reports a nested directory without a build file.
func NewSubprojectNotFoundError(path string) *Error {
	return &Error{
		Code:       ErrCodeSubprojectNotFound,
		Message:    "no build file found",
		Path:       path,
		Suggestion: "Create a makeflow.hcl, makeflow.yaml or makeflow.toml there, or set the build file name.",
	}
}

// NewCycleDetectedError reports a dependency cycle found in strict mode.
// cycle lists the names along the cycle, first and last being equal.
func NewCycleDetectedError(cycle []string) *Error {
	var name string
	if len(cycle) > 0 {
		name = cycle[0]
	}
	return &Error{
		Code:       ErrCodeCycleDetected,
		Message:    fmt.Sprintf("dependency cycle detected: %s", strings.Join(cycle, " → ")),
		Target:     name,
		Suggestion: "Remove one of the dependencies along the cycle.",
	}
}

// NewSubprojectCycleError reports a directory that includes itself, directly or
// through other sub-projects.
func NewSubprojectCycleError(chain []string) *Error {
	var path string
	if len(chain) > 0 {
		path = chain[len(chain)-1]
	}
	return &Error{
		Code:       ErrCodeSubprojectCycle,
		Message:    fmt.Sprintf("sub-project include cycle: %s", strings.Join(chain, " → ")),
		Path:       path,
		Suggestion: "Remove the subdir entry that points back to a parent project.",
	}
}
