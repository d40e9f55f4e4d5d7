package execution

// Status is the outcome of one target in a run.
type Status string

const (
	// StatusSucceeded indicates the action returned without error.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the action returned an error or panicked.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the run stopped before reaching the target.
	StatusSkipped Status = "skipped"
	// StatusPlanned indicates a dry run would have built the target.
	StatusPlanned Status = "planned"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the target was reached by the run.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed:
		return true
	case StatusSkipped, StatusPlanned:
		return false
	}
	return false
}
