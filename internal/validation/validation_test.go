package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTargetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "build", wantErr: nil},
		{name: "with punctuation", input: "docs:html", wantErr: nil},
		{name: "with inner space", input: "run tests", wantErr: nil},
		{name: "unicode", input: "générer", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "newline", input: "build\nrm", wantErr: ErrInvalidTargetName},
		{name: "null byte", input: "build\x00", wantErr: ErrInvalidTargetName},
		{name: "leading space", input: " build", wantErr: ErrInvalidTargetName},
		{name: "trailing tab", input: "build\t", wantErr: ErrInvalidTargetName},
		{name: "too long", input: strings.Repeat("a", 300), wantErr: ErrInvalidTargetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTargetName(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "lib", wantErr: nil},
		{name: "nested", input: "src/lib", wantErr: nil},
		{name: "dot prefix", input: "./lib", wantErr: nil},
		{name: "dots in name", input: "lib..old", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "absolute", input: "/etc", wantErr: ErrInvalidPath},
		{name: "control character", input: "lib\n", wantErr: ErrInvalidPath},
		{name: "parent", input: "..", wantErr: ErrPathTraversal},
		{name: "escapes", input: "lib/../../etc", wantErr: ErrPathTraversal},
		{name: "encoded", input: "%2E%2E/etc", wantErr: ErrPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "https", input: "https://example.com/hooks/build", wantErr: nil},
		{name: "port and query", input: "http://localhost:8080/notify?from=ci", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "ftp", input: "ftp://example.com/file", wantErr: ErrInvalidURL},
		{name: "no scheme", input: "example.com/path", wantErr: ErrInvalidURL},
		{name: "no host", input: "https:///path", wantErr: ErrInvalidURL},
		{name: "unparsable", input: "http://[::1", wantErr: ErrInvalidURL},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", 2100), wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
