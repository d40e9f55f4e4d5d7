package ports

import (
	"context"
	"io"
)

// CommandSpec describes a process to launch.
type CommandSpec struct {
	Program string
	Args    []string
	// Dir is the working directory of the child process. Empty means the
	// current process working directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
	// Shell runs Program and Args through the platform shell.
	Shell bool
	// Stdout and Stderr receive the streamed output. When nil the output is
	// captured into CommandResult instead.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandResult represents the result of executing a command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
	Dir     string
}

// CommandRunner executes external programs.
// A non-zero exit status is reported through CommandResult, not as an error;
// errors mean the process could not be started or waited for.
type CommandRunner interface {
	Run(ctx context.Context, spec CommandSpec) (CommandResult, error)
}
