package events

import "time"

// Status represents the execution outcome of a step, case or run.
type Status int

const (
	// Unknown is the zero value; reporters treat it like Passed.
	Unknown Status = iota
	// Passed indicates the step executed successfully.
	Passed
	// Skipped indicates the step was not executed due to an earlier
	// failure.
	Skipped
	// Pending indicates a step definition that is declared but not yet
	// implemented.
	Pending
	// Undefined indicates no step definition matched the step text.
	Undefined
	// Ambiguous indicates more than one step definition matched.
	Ambiguous
	// Failed indicates the step executed and failed.
	Failed
)

// String returns a human-readable label for the status.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Skipped:
		return "skipped"
	case Pending:
		return "pending"
	case Undefined:
		return "undefined"
	case Ambiguous:
		return "ambiguous"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Error describes a reported failure. Reporters render it verbatim.
type Error struct {
	// Message is the failure message.
	Message string

	// Trace is the stack-like trace accompanying the message. May be
	// empty.
	Trace string
}

// Description returns the full rendering of the error: the message,
// followed by the trace when present.
func (e *Error) Description() string {
	if e.Trace == "" {
		return e.Message
	}
	return e.Message + "\n" + e.Trace
}

// Result holds the outcome of a finished step, case or run.
type Result struct {
	// Status is the execution outcome.
	Status Status

	// Duration is the wall-clock execution time.
	Duration time.Duration

	// Error describes the failure. Nil when the status carries no
	// error.
	Error *Error
}
