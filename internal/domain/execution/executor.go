package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// Executor runs a resolved target sequence strictly one action at a time.
type Executor struct {
	dryRun bool
	chdir  bool
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithDryRun returns an Executor that reports targets as planned without
// running their actions.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	return &Executor{
		dryRun: dryRun,
		chdir:  e.chdir,
		logger: e.logger,
	}
}

// WithChdir returns an Executor that switches the process working directory
// to each target's execution root while its action runs.
func (e *Executor) WithChdir(chdir bool) *Executor {
	return &Executor{
		dryRun: e.dryRun,
		chdir:  chdir,
		logger: e.logger,
	}
}

// WithLogger returns an Executor that logs to logger instead of each
// target's own logger.
func (e *Executor) WithLogger(logger ports.Logger) *Executor {
	return &Executor{
		dryRun: e.dryRun,
		chdir:  e.chdir,
		logger: logger,
	}
}

// Execute runs targets in order and returns the ones that completed. On
// failure the error is an ActionFailed *target.Error naming the target.
func (e *Executor) Execute(ctx context.Context, targets []*target.Target) ([]*target.Target, error) {
	report := e.Run(ctx, targets)
	return report.Executed(), report.Err
}

// Run runs targets in order and returns a full report. Execution stops at the
// first failure or cancellation; the remaining targets are reported as skipped.
func (e *Executor) Run(ctx context.Context, targets []*target.Target) Report {
	report := Report{
		Results: make([]Result, 0, len(targets)),
		DryRun:  e.dryRun,
	}

	lifecycle, err := NewLifecycle()
	if err != nil {
		report.Err = err
		return report
	}
	defer lifecycle.Stop()
	lifecycle.Start()

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, skipped(targets[i:])...)
			report.Err = err
			report.State = lifecycle.Cancel()
			report.Duration = lifecycle.Elapsed()
			return report
		}

		result := e.executeTarget(ctx, t)
		report.Results = append(report.Results, result)

		if result.Status() == StatusFailed {
			report.Results = append(report.Results, skipped(targets[i+1:])...)
			report.Err = target.NewActionFailedError(t.Name, result.Error())
			if ctx.Err() != nil {
				report.State = lifecycle.Cancel()
			} else {
				report.State = lifecycle.Fail()
			}
			report.Duration = lifecycle.Elapsed()
			return report
		}
	}

	report.State = lifecycle.Succeed()
	report.Duration = lifecycle.Elapsed()
	return report
}

func skipped(targets []*target.Target) []Result {
	out := make([]Result, len(targets))
	for i, t := range targets {
		out[i] = NewResult(t, StatusSkipped, nil)
	}
	return out
}

func (e *Executor) loggerFor(t *target.Target) ports.Logger {
	base := e.logger
	if base == nil {
		base = t.Options.Logger
	}
	fields := []ports.Field{ports.F("target", t.Name)}
	if t.Options.Prefix != "" {
		fields = append(fields, ports.F("project", t.Options.Prefix))
	}
	return ports.OrNop(base).With(fields...)
}

// executeTarget runs a single target.
func (e *Executor) executeTarget(ctx context.Context, t *target.Target) Result {
	logger := e.loggerFor(t)

	if e.dryRun {
		logger.Info(ctx, fmt.Sprintf("would build %s", t.Name))
		return NewResult(t, StatusPlanned, nil)
	}

	logger.Info(ctx, fmt.Sprintf("building %s", t.Name))
	if t.IsPhony() {
		return NewResult(t, StatusSucceeded, nil)
	}

	rc := target.NewRunContext(ctx, t, logger)

	start := time.Now()
	err := e.runAction(rc, t)
	duration := time.Since(start)

	if err != nil {
		logger.Error(ctx, fmt.Sprintf("target %s failed", t.Name), ports.Err(err))
		return NewResult(t, StatusFailed, err).WithDuration(duration)
	}

	logger.Debug(ctx, fmt.Sprintf("built %s", t.Name), ports.F("duration", duration.String()))
	return NewResult(t, StatusSucceeded, nil).WithDuration(duration)
}

// runAction invokes the action, converting a panic into an error. In chdir
// mode the working directory is restored before the panic is recovered.
func (e *Executor) runAction(rc target.RunContext, t *target.Target) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()

	if e.chdir {
		restore, enterErr := ports.EnterDir(t.Options.Dir)
		if enterErr != nil {
			return enterErr
		}
		defer func() {
			if restoreErr := restore(); restoreErr != nil && err == nil {
				err = restoreErr
			}
		}()
	}

	return t.Action.Run(rc)
}
