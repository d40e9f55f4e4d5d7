package ports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, filepath.Join(home, "src"), ExpandPath("~/src"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{name: "relative joined onto root", root: "/work/src", path: "out/a.txt", want: "/work/src/out/a.txt"},
		{name: "absolute kept", root: "/work/src", path: "/tmp/a.txt", want: "/tmp/a.txt"},
		{name: "empty root keeps relative", root: "", path: "a.txt", want: "a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, filepath.FromSlash(tt.want), ResolvePath(filepath.FromSlash(tt.root), filepath.FromSlash(tt.path)))
		})
	}
}
