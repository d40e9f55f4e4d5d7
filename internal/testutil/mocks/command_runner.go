// Package mocks provides test doubles for the ports interfaces.
package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
// Results are keyed by program and arguments; the working directory is
// recorded but not part of the key.
type CommandRunner struct {
	mu      sync.RWMutex
	results map[string]ports.CommandResult
	errors  map[string]error
	calls   []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results: make(map[string]ports.CommandResult),
		errors:  make(map[string]error),
		calls:   make([]ports.CommandCall, 0),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// Run executes a mock command. Registered stdout and stderr are copied to the
// spec's writers when they are set.
func (m *CommandRunner) Run(ctx context.Context, spec ports.CommandSpec) (ports.CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Command: spec.Program,
		Args:    spec.Args,
		Dir:     spec.Dir,
	})
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.CommandResult{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(spec.Program, spec.Args)

	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}

	result, ok := m.results[key]
	if !ok {
		return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", spec.Program, spec.Args)
	}

	if spec.Stdout != nil && result.Stdout != "" {
		_, _ = io.WriteString(spec.Stdout, result.Stdout)
		result.Stdout = ""
	}
	if spec.Stderr != nil && result.Stderr != "" {
		_, _ = io.WriteString(spec.Stderr, result.Stderr)
		result.Stderr = ""
	}
	return result, nil
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears all registered results, errors, and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string]ports.CommandResult)
	m.errors = make(map[string]error)
	m.calls = make([]ports.CommandCall, 0)
}

func buildKey(command string, args []string) string {
	return command + ":" + strings.Join(args, ":")
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
