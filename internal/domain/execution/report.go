package execution

import (
	"time"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Summary provides aggregate statistics about a run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Planned   int
}

// Report describes a finished run.
type Report struct {
	Results  []Result
	State    RunState
	Err      error
	Duration time.Duration
	DryRun   bool
}

// Executed returns the targets whose action completed, or in a dry run the
// targets that would have been built, in execution order.
func (r Report) Executed() []*target.Target {
	out := make([]*target.Target, 0, len(r.Results))
	for _, res := range r.Results {
		if res.status == StatusSucceeded || res.status == StatusPlanned {
			out = append(out, res.target)
		}
	}
	return out
}

// Failed returns the failing result, if any.
func (r Report) Failed() (Result, bool) {
	for _, res := range r.Results {
		if res.status == StatusFailed {
			return res, true
		}
	}
	return Result{}, false
}

// Success returns true if the run finished without error.
func (r Report) Success() bool {
	return r.Err == nil
}

// Summary returns aggregate statistics.
func (r Report) Summary() Summary {
	summary := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		case StatusPlanned:
			summary.Planned++
		}
	}
	return summary
}
