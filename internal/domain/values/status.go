package values

// Status is the outcome of one dispatched action step.
type Status string

const (
	// StatusOK indicates the driver performed the action
	StatusOK Status = "ok"
	// StatusFailed indicates the driver returned an error or was missing
	StatusFailed Status = "failed"
	// StatusDenied indicates the capability check refused the action
	StatusDenied Status = "denied"
	// StatusSkipped indicates the action was not attempted, e.g. no MIDI port
	StatusSkipped Status = "skipped"
)

// IsFailure reports whether the step counts as a failed step.
func (s Status) IsFailure() bool {
	return s == StatusFailed || s == StatusDenied
}

// String returns the status name.
func (s Status) String() string {
	return string(s)
}
