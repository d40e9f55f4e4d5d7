// Package command provides the process execution adapter.
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// RealRunner launches real child processes.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes the command described by spec and returns the result.
// Output is streamed to spec.Stdout/spec.Stderr when set and captured otherwise.
func (r *RealRunner) Run(ctx context.Context, spec ports.CommandSpec) (ports.CommandResult, error) {
	ports.OrNop(ports.LoggerFromContext(ctx)).Debug(ctx, "running program",
		ports.F("program", spec.Program),
		ports.F("args", strings.Join(spec.Args, " ")),
		ports.F("dir", spec.Dir))

	cmd := build(ctx, spec)

	var stdout, stderr strings.Builder
	cmd.Stdout = pick(spec.Stdout, &stdout)
	cmd.Stderr = pick(spec.Stderr, &stderr)

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

func build(ctx context.Context, spec ports.CommandSpec) *exec.Cmd {
	var cmd *exec.Cmd
	if spec.Shell {
		line := strings.Join(append([]string{spec.Program}, spec.Args...), " ")
		if runtime.GOOS == "windows" {
			cmd = exec.CommandContext(ctx, "cmd", "/C", line)
		} else {
			cmd = exec.CommandContext(ctx, "/bin/sh", "-c", line)
		}
	} else {
		cmd = exec.CommandContext(ctx, spec.Program, spec.Args...)
	}

	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	return cmd
}

func pick(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
