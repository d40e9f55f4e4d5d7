package actions_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/testutil"
)

func TestCopy_CopiesAndPreservesModTime(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddFile("/src/a.txt", "A")
	h.fs.AddFile("/src/b.txt", "B")

	err := h.run(t, "copy", "/src", map[string]interface{}{
		"source": []interface{}{"a.txt", "b.txt"},
		"dest":   "out",
	})
	require.NoError(t, err)

	data, err := h.fs.ReadFile("/src/out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))

	srcInfo, _ := h.fs.GetFileInfo("/src/b.txt")
	destInfo, _ := h.fs.GetFileInfo("/src/out/b.txt")
	assert.Equal(t, srcInfo.ModTime, destInfo.ModTime)
	assert.True(t, h.log.Contains("copying /src/a.txt to /src/out/a.txt"))
}

func TestCopy_SkipsUpToDate(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddFile("/src/a.txt", "new")
	h.fs.AddFile("/src/out/a.txt", "old")

	srcInfo, _ := h.fs.GetFileInfo("/src/a.txt")
	require.NoError(t, h.fs.Chtimes("/src/out/a.txt", srcInfo.ModTime, srcInfo.ModTime))

	err := h.run(t, "copy", "/src", map[string]interface{}{"source": "a.txt", "dest": "out"})
	require.NoError(t, err)

	data, _ := h.fs.ReadFile("/src/out/a.txt")
	assert.Equal(t, "old", string(data))
	assert.False(t, h.log.Contains("copying"))
}

func TestCopy_Rename(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddFile("/src/a.txt", "A")
	h.fs.AddFile("/src/b.txt", "B")

	require.NoError(t, h.run(t, "copy", "/src", map[string]interface{}{
		"source": "a.txt", "dest": "out", "rename": "renamed.txt",
	}))
	assert.True(t, h.fs.Exists("/src/out/renamed.txt"))

	require.NoError(t, h.run(t, "copy", "/src", map[string]interface{}{
		"source": []interface{}{"a.txt", "b.txt"}, "dest": "multi", "rename": "ignored.txt",
	}))
	assert.True(t, h.fs.Exists("/src/multi/a.txt"))
	assert.False(t, h.fs.Exists("/src/multi/ignored.txt"))
}

func TestCopy_MissingSource(t *testing.T) {
	t.Parallel()

	h := newHarness()

	err := h.run(t, "copy", "/src", map[string]interface{}{"source": "nope.txt", "dest": "out"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "/src/nope.txt")
}

func TestMkdir(t *testing.T) {
	t.Parallel()

	h := newHarness()

	require.NoError(t, h.run(t, "mkdir", "/src", map[string]interface{}{"path": "build/obj"}))

	assert.True(t, h.fs.IsDir("/src/build/obj"))
	assert.True(t, h.fs.IsDir("/src/build"))
}

func TestTouch(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddFile("/src/stamp", "")

	require.NoError(t, h.run(t, "touch", "/src", map[string]interface{}{"source": "stamp"}))

	info, err := h.fs.GetFileInfo("/src/stamp")
	require.NoError(t, err)
	assert.Equal(t, fixedNow, info.ModTime)
	assert.True(t, h.log.Contains("touching /src/stamp"))

	err = h.run(t, "touch", "/src", map[string]interface{}{"source": []interface{}{"stamp", "missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/src/missing")
}

func TestRm(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddDir("/src/build")
	h.fs.AddFile("/src/build/a.o", "")

	require.NoError(t, h.run(t, "rm", "/src", map[string]interface{}{"path": "build"}))
	assert.False(t, h.fs.Exists("/src/build/a.o"))

	require.NoError(t, h.run(t, "rm", "/src", map[string]interface{}{"path": "build"}), "missing paths are ignored by default")

	err := h.run(t, "rm", "/src", map[string]interface{}{"path": "build", "ignore_error": false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file found")
}

func TestWrite(t *testing.T) {
	t.Parallel()

	h := newHarness()

	require.NoError(t, h.run(t, "write", "/src", map[string]interface{}{"file": "version.txt", "contents": "1.0"}))
	data, _ := h.fs.ReadFile("/src/version.txt")
	assert.Equal(t, "1.0", string(data))

	h.log.Reset()
	require.NoError(t, h.run(t, "write", "/src", map[string]interface{}{"file": "version.txt", "contents": "1.0"}))
	assert.False(t, h.log.Contains("writing"), "unchanged contents are not rewritten")

	require.NoError(t, h.run(t, "write", "/src", map[string]interface{}{"file": "version.txt", "contents": "2.0"}))
	data, _ = h.fs.ReadFile("/src/version.txt")
	assert.Equal(t, "2.0", string(data))
}

func TestRename(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.fs.AddFile("/src/out/app", "bin")
	h.fs.AddFile("/src/out/lib", "so")

	require.NoError(t, h.run(t, "rename", "/src", map[string]interface{}{"source": "out/app", "new_name": "app-linux"}))
	assert.True(t, h.fs.Exists("/src/out/app-linux"))
	assert.False(t, h.fs.Exists("/src/out/app"))

	require.NoError(t, h.run(t, "rename", "/src", map[string]interface{}{"source": "out/lib", "new_name": "dist/lib.so"}))
	assert.True(t, h.fs.Exists("/src/dist/lib.so"))
}

func TestFileActions_RealFileSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := testutil.WriteTempFile(t, dir, "in/data.txt", "payload")
	old := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, old, old))

	catalog := actions.NewCatalog(actions.Deps{})
	h := newHarness()

	built, err := catalog.Build("copy", actions.ArgsFrom(map[string]interface{}{"source": "in/data.txt", "dest": "out"}))
	require.NoError(t, err)
	require.NoError(t, h.runBuilt(built, dir))

	copied := filepath.Join(dir, "out", "data.txt")
	testutil.AssertFileEquals(t, copied, "payload")
	testutil.AssertModTime(t, copied, old)

	built, err = catalog.Build("rm", actions.ArgsFrom(map[string]interface{}{"path": "out"}))
	require.NoError(t, err)
	require.NoError(t, h.runBuilt(built, dir))
	testutil.AssertFileNotExists(t, copied)
}
