// Package build is the evaluation entry point: it resolves requested targets
// against a registry and runs them.
package build

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/makeflow/internal/domain/execution"
	"github.com/felixgeelhaar/makeflow/internal/domain/resolver"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// Engine evaluates targets registered in a Registry.
type Engine struct {
	registry *target.Registry
	strict   bool
	chdir    bool
	dryRun   bool
	newRunID func() string
}

// NewEngine creates an Engine over registry.
func NewEngine(registry *target.Registry) *Engine {
	return &Engine{
		registry: registry,
		newRunID: func() string { return uuid.NewString() },
	}
}

func (e *Engine) clone() *Engine {
	cp := *e
	return &cp
}

// WithStrict returns an Engine that reports dependency cycles as errors.
func (e *Engine) WithStrict(strict bool) *Engine {
	cp := e.clone()
	cp.strict = strict
	return cp
}

// WithChdir returns an Engine that switches the process working directory to
// each target's execution root while its action runs.
func (e *Engine) WithChdir(chdir bool) *Engine {
	cp := e.clone()
	cp.chdir = chdir
	return cp
}

// WithDryRun returns an Engine that reports what would run without running it.
func (e *Engine) WithDryRun(dryRun bool) *Engine {
	cp := e.clone()
	cp.dryRun = dryRun
	return cp
}

// WithRunIDs returns an Engine that takes run IDs from gen.
func (e *Engine) WithRunIDs(gen func() string) *Engine {
	cp := e.clone()
	cp.newRunID = gen
	return cp
}

// Registry returns the underlying registry.
func (e *Engine) Registry() *target.Registry {
	return e.registry
}

// Plan resolves names into the execution sequence without running anything.
func (e *Engine) Plan(names []string) ([]*target.Target, error) {
	return resolver.NewResolver(e.registry).WithStrict(e.strict).Resolve(names)
}

// FindMissingDepends reports targets that depend on unregistered names.
func (e *Engine) FindMissingDepends() []target.MissingDepends {
	return e.registry.FindMissingDepends()
}

// Evaluate resolves names and runs the resulting sequence, returning the
// targets that completed. Resolution errors abort before any action runs.
func (e *Engine) Evaluate(ctx context.Context, names []string, logger ports.Logger) ([]*target.Target, error) {
	report, err := e.Run(ctx, names, logger)
	return report.Executed(), err
}

// Run resolves names and runs the resulting sequence, returning the full report.
// A nil logger leaves each target logging through its own Options.Logger.
func (e *Engine) Run(ctx context.Context, names []string, logger ports.Logger) (execution.Report, error) {
	executor := execution.NewExecutor().
		WithDryRun(e.dryRun).
		WithChdir(e.chdir)

	var runLogger ports.Logger = ports.NewNopLogger()
	if logger != nil {
		runLogger = logger.With(ports.F("run", e.newRunID()))
		executor = executor.WithLogger(runLogger)
	}

	seq, err := e.Plan(names)
	if err != nil {
		runLogger.Error(ctx, "failed to resolve targets", ports.Err(err))
		return execution.Report{State: execution.StateIdle, Err: err}, err
	}

	runLogger.Debug(ctx, fmt.Sprintf("resolved %d targets", len(seq)),
		ports.F("order", target.Names(seq)))

	report := executor.Run(ctx, seq)
	if report.Err != nil {
		return report, report.Err
	}

	summary := report.Summary()
	runLogger.Debug(ctx, "build finished",
		ports.F("state", string(report.State)),
		ports.F("succeeded", summary.Succeeded),
		ports.F("planned", summary.Planned),
		ports.F("duration", report.Duration.String()))
	return report, nil
}
