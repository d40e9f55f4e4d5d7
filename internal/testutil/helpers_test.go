package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTempFile_CreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteTempFile(t, dir, "a/b/c.txt", "hello")

	assert.Equal(t, filepath.Join(dir, "a", "b", "c.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteTempDir(t *testing.T) {
	t.Parallel()

	path := WriteTempDir(t, t.TempDir(), "sub/dir")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestChangeDir_RestoresOnCleanup(t *testing.T) {
	before := Getwd(t)
	dir := t.TempDir()

	t.Run("inner", func(t *testing.T) {
		ChangeDir(t, dir)
		assert.Equal(t, RealDir(t, dir), Getwd(t))
	})

	assert.Equal(t, before, Getwd(t))
}
