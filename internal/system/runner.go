// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"time"
)

// RunOptions configures a single external command invocation.
type RunOptions struct {
	// Dir is the working directory for the command (required).
	Dir string

	// Env holds environment overrides merged over the ambient environment.
	Env map[string]string

	// Timeout kills the command if it has not exited in time. Zero means
	// no timeout.
	Timeout time.Duration

	// InheritOutput streams child stdout/stderr to the terminal instead of
	// capturing it. Used for interactive debugging of scaffolding tools.
	InheritOutput bool
}

// Result holds the output of a successfully completed command.
type Result struct {
	// Stdout is the captured standard output. Empty when the command ran
	// with InheritOutput.
	Stdout string
}

// Runner executes one external shell command.
type Runner interface {
	// Run parses command with shell-style quoting, executes it in
	// opts.Dir, and returns its captured output. Failures are reported
	// as *ProcessError.
	Run(ctx context.Context, command string, opts RunOptions) (Result, error)
}

// defaultRunner is the default Runner using real OS processes.
var defaultRunner Runner = &osRunner{}

// DefaultRunner returns the default Runner implementation.
func DefaultRunner() Runner {
	return defaultRunner
}

// SetDefaultRunner sets the default Runner (useful for testing).
func SetDefaultRunner(r Runner) {
	defaultRunner = r
}

// ResetDefaults restores the default OS implementation.
func ResetDefaults() {
	defaultRunner = &osRunner{}
}
