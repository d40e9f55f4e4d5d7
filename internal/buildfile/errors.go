package buildfile

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeParse             = "BUILD_FILE_PARSE"
	ErrCodeInvalid           = "BUILD_FILE_INVALID"
	ErrCodeVersion           = "VERSION_UNSATISFIED"
)

// Error is a build file problem a user can act on.
type Error struct {
	Code       string
	Message    string
	Path       string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	b.WriteString(e.Message)
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors for use with errors.Is().
var (
	ErrUnsupportedFormat = &Error{Code: ErrCodeUnsupportedFormat}
	ErrParse             = &Error{Code: ErrCodeParse}
	ErrInvalid           = &Error{Code: ErrCodeInvalid}
	ErrVersion           = &Error{Code: ErrCodeVersion}
)

// NewUnsupportedFormatError reports a file extension no parser handles.
func NewUnsupportedFormatError(path string) *Error {
	return &Error{
		Code:       ErrCodeUnsupportedFormat,
		Message:    "unsupported build file format",
		Path:       path,
		Suggestion: "Use a .hcl, .yaml, .yml or .toml build file",
	}
}

// NewParseError wraps a syntax error.
func NewParseError(path string, err error) *Error {
	return &Error{
		Code:       ErrCodeParse,
		Message:    "failed to parse build file",
		Path:       path,
		Suggestion: "Check the file syntax near the reported position",
		Underlying: err,
	}
}

// NewInvalidError reports a structurally invalid build file.
func NewInvalidError(path, msg string) *Error {
	return &Error{
		Code:    ErrCodeInvalid,
		Message: msg,
		Path:    path,
	}
}

// NewVersionError reports a build file that needs a newer makeflow.
func NewVersionError(path, required, current string) *Error {
	return &Error{
		Code:       ErrCodeVersion,
		Message:    fmt.Sprintf("requires makeflow %s or newer, running %s", required, current),
		Path:       path,
		Suggestion: "Upgrade makeflow",
	}
}
