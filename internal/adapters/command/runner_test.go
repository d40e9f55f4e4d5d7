package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/felixgeelhaar/makeflow/internal/ports"
	"github.com/felixgeelhaar/makeflow/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}
}

func TestRealRunner_Run_Success(t *testing.T) {
	skipOnWindows(t)
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), ports.CommandSpec{Program: "echo", Args: []string{"hello"}})
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestRealRunner_Run_LogsThroughContextLogger(t *testing.T) {
	skipOnWindows(t)
	log := mocks.NewLogger()
	ctx := ports.ContextWithLogger(context.Background(), log)
	dir := t.TempDir()

	_, err := NewRealRunner().Run(ctx, ports.CommandSpec{Program: "true", Dir: dir})
	require.NoError(t, err)

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "running program", entries[0].Message)
	program, _ := entries[0].Field("program")
	assert.Equal(t, "true", program)
	got, _ := entries[0].Field("dir")
	assert.Equal(t, dir, got)
}

func TestRealRunner_Run_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), ports.CommandSpec{Program: "sh", Args: []string{"-c", "echo error >&2; exit 3"}})
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "error\n", result.Stderr)
}

func TestRealRunner_Run_NotFound(t *testing.T) {
	runner := NewRealRunner()

	_, err := runner.Run(context.Background(), ports.CommandSpec{Program: "nonexistent-command-12345"})
	assert.Error(t, err)
}

func TestRealRunner_Run_Dir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	result, err := NewRealRunner().Run(context.Background(), ports.CommandSpec{Program: "ls", Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "marker.txt")
}

func TestRealRunner_Run_ShellAndEnv(t *testing.T) {
	skipOnWindows(t)
	var out bytes.Buffer

	result, err := NewRealRunner().Run(context.Background(), ports.CommandSpec{
		Program: "echo",
		Args:    []string{"$MAKEFLOW_TEST_VALUE"},
		Shell:   true,
		Env:     []string{"MAKEFLOW_TEST_VALUE=streamed"},
		Stdout:  &out,
	})
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "streamed\n", out.String())
	assert.Empty(t, result.Stdout)
}

func TestRealRunner_Run_ContextCancellation(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRealRunner().Run(ctx, ports.CommandSpec{Program: "sleep", Args: []string{"10"}})
	assert.Error(t, err)
}
