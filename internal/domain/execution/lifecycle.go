package execution

import (
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/statekit"
)

// RunState is the lifecycle state of a run.
type RunState string

const (
	// StateIdle indicates no run has started.
	StateIdle RunState = "idle"
	// StateRunning indicates actions are being executed.
	StateRunning RunState = "running"
	// StateSucceeded indicates every target was built.
	StateSucceeded RunState = "succeeded"
	// StateFailed indicates an action failed.
	StateFailed RunState = "failed"
	// StateCancelled indicates the context was cancelled.
	StateCancelled RunState = "cancelled"
)

// Event types for the run state machine.
const (
	EventStart   statekit.EventType = "START"
	EventSucceed statekit.EventType = "SUCCEED"
	EventFail    statekit.EventType = "FAIL"
	EventCancel  statekit.EventType = "CANCEL"
	EventReset   statekit.EventType = "RESET"
)

// LifecycleContext is the statekit context of a run.
type LifecycleContext struct {
	StartedAt  time.Time
	FinishedAt time.Time
}

// Lifecycle tracks a run through idle, running and one terminal state.
type Lifecycle struct {
	mu     sync.Mutex
	interp *statekit.Interpreter[LifecycleContext]
	times  LifecycleContext
	now    func() time.Time
}

// NewLifecycle builds and starts the run state machine in the idle state.
func NewLifecycle() (*Lifecycle, error) {
	l := &Lifecycle{now: time.Now}

	machine, err := statekit.NewMachine[LifecycleContext]("makeflow-run").
		WithInitial("idle").
		WithContext(LifecycleContext{}).
		WithAction("recordStart", func(_ *LifecycleContext, _ statekit.Event) {
			l.times = LifecycleContext{StartedAt: l.now()}
		}).
		WithAction("recordFinish", func(_ *LifecycleContext, _ statekit.Event) {
			l.times.FinishedAt = l.now()
		}).
		State("idle").
		On(EventStart).Target("running").Done().
		State("running").
		OnEntry("recordStart").
		On(EventSucceed).Target("succeeded").
		On(EventFail).Target("failed").
		On(EventCancel).Target("cancelled").Done().
		State("succeeded").
		OnEntry("recordFinish").
		On(EventReset).Target("idle").Done().
		State("failed").
		OnEntry("recordFinish").
		On(EventReset).Target("idle").Done().
		State("cancelled").
		OnEntry("recordFinish").
		On(EventReset).Target("idle").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run state machine: %w", err)
	}

	l.interp = statekit.NewInterpreter(machine)
	l.interp.Start()
	return l, nil
}

func (l *Lifecycle) send(event statekit.EventType) RunState {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interp.Send(statekit.Event{Type: event})
	return RunState(l.interp.State().Value)
}

// Start moves an idle run to running.
func (l *Lifecycle) Start() RunState { return l.send(EventStart) }

// Succeed finishes a running run successfully.
func (l *Lifecycle) Succeed() RunState { return l.send(EventSucceed) }

// Fail finishes a running run with a failure.
func (l *Lifecycle) Fail() RunState { return l.send(EventFail) }

// Cancel finishes a running run as cancelled.
func (l *Lifecycle) Cancel() RunState { return l.send(EventCancel) }

// Reset returns a finished run to idle.
func (l *Lifecycle) Reset() RunState { return l.send(EventReset) }

// State returns the current state.
func (l *Lifecycle) State() RunState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return RunState(l.interp.State().Value)
}

// Elapsed returns the time between entering running and the terminal state.
func (l *Lifecycle) Elapsed() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.times.StartedAt.IsZero() || l.times.FinishedAt.IsZero() {
		return 0
	}
	return l.times.FinishedAt.Sub(l.times.StartedAt)
}

// Stop stops the interpreter.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interp.Stop()
}
