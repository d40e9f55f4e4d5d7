package target

import (
	"context"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// RunContext is handed to every action. It carries the cancellation context,
// the target being built and its execution root.
type RunContext struct {
	ctx    context.Context
	target *Target
	logger ports.Logger
	dryRun bool
}

// NewRunContext creates a RunContext for t. A nil logger falls back to the
// target's own logger. The logger also rides on the context so adapters the
// action calls can log against the same target.
func NewRunContext(ctx context.Context, t *Target, logger ports.Logger) RunContext {
	if logger == nil && t != nil {
		logger = t.Options.Logger
	}
	return RunContext{
		ctx:    withLogger(ctx, logger),
		target: t,
		logger: logger,
	}
}

func withLogger(ctx context.Context, logger ports.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return ports.ContextWithLogger(ctx, logger)
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// Target returns the target being built.
func (r RunContext) Target() *Target {
	return r.target
}

// Options returns the target's options.
func (r RunContext) Options() Options {
	if r.target == nil {
		return Options{}
	}
	return r.target.Options
}

// Dir returns the execution root. Empty means the process working directory.
func (r RunContext) Dir() string {
	return r.Options().Dir
}

// Path resolves p against the execution root.
func (r RunContext) Path(p string) string {
	return ports.ResolvePath(r.Dir(), p)
}

// Logger returns the logger for this target. It may be nil.
func (r RunContext) Logger() ports.Logger {
	return r.logger
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	newCtx := r
	newCtx.dryRun = dryRun
	return newCtx
}

// WithContext returns a new RunContext using ctx.
func (r RunContext) WithContext(ctx context.Context) RunContext {
	newCtx := r
	newCtx.ctx = withLogger(ctx, r.logger)
	return newCtx
}
