package system

import "fmt"

// FailureReason classifies why an external command failed.
type FailureReason int

const (
	// ReasonStartFailed means the command could not be started at all
	// (binary missing, bad working directory, unparseable command line).
	ReasonStartFailed FailureReason = iota

	// ReasonNonZeroExit means the command ran and exited non-zero.
	ReasonNonZeroExit

	// ReasonTimeout means the command was killed after exceeding its timeout.
	ReasonTimeout
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNonZeroExit:
		return "non-zero exit"
	case ReasonTimeout:
		return "timeout"
	default:
		return "start failed"
	}
}

// ProcessError reports an external command that exited non-zero, timed out,
// or could not be started. Callers decide whether the failure aborts only
// the owning task or the whole run.
type ProcessError struct {
	// Command is the original shell command string.
	Command string

	// Reason classifies the failure.
	Reason FailureReason

	// ExitCode is the process exit code for ReasonNonZeroExit.
	ExitCode int

	// StderrTail holds the last captured stderr output for diagnosis.
	// Empty when the command ran with InheritOutput.
	StderrTail string

	// Cause is the underlying error from the OS, if any.
	Cause error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command %q: %s", e.Command, e.Reason)
	if e.Reason == ReasonNonZeroExit {
		msg = fmt.Sprintf("%s (exit code %d)", msg, e.ExitCode)
	}
	if e.StderrTail != "" {
		msg = fmt.Sprintf("%s\nstderr: %s", msg, e.StderrTail)
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}
