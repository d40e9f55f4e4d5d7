// Package execution runs resolved target sequences one action at a time.
package execution

import (
	"time"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Result captures the outcome of one target.
type Result struct {
	target   *target.Target
	status   Status
	err      error
	duration time.Duration
}

// NewResult creates a new Result.
func NewResult(t *target.Target, status Status, err error) Result {
	return Result{
		target: t,
		status: status,
		err:    err,
	}
}

// Target returns the target.
func (r Result) Target() *target.Target {
	return r.target
}

// Name returns the target name.
func (r Result) Name() string {
	return r.target.Name
}

// Status returns the final status of the target.
func (r Result) Status() Status {
	return r.status
}

// Error returns the action error, if any.
func (r Result) Error() error {
	return r.err
}

// Duration returns how long the action took.
func (r Result) Duration() time.Duration {
	return r.duration
}

// Success returns true if the action completed successfully.
func (r Result) Success() bool {
	return r.status == StatusSucceeded
}

// Skipped returns true if the target was never reached.
func (r Result) Skipped() bool {
	return r.status == StatusSkipped
}

// WithDuration returns a new Result with duration set.
func (r Result) WithDuration(d time.Duration) Result {
	r.duration = d
	return r
}
