package errors

import (
	"errors"
	"fmt"
)

// Exit codes for sandbox-gen
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitTemplateNotFound = 2
	ExitProcessFailed    = 3
	ExitFilesystem       = 4
	ExitConfigError      = 5
	ExitConfigRestore    = 6
)

// GenError is the base error type for sandbox-gen
type GenError struct {
	Code    int
	Message string
	Cause   error
}

func (e *GenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GenError) ExitCode() int {
	return e.Code
}

// New creates a new GenError
func New(code int, message string) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GenError
func Wrap(code int, message string, cause error) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// TemplateNotFound returns an error for a template key missing from the catalog.
// This is fatal at the orchestrator level: there is nothing to run.
func TemplateNotFound(key string) *GenError {
	return New(ExitTemplateNotFound, fmt.Sprintf("template not found in catalog: %s", key))
}

// ProcessFailed returns an error for an external command failure.
func ProcessFailed(op string, cause error) *GenError {
	return Wrap(ExitProcessFailed, fmt.Sprintf("%s failed", op), cause)
}

// FilesystemError returns an error for a copy/move/remove failure.
// The owning task's output directory must be treated as invalid afterwards.
func FilesystemError(op string, cause error) *GenError {
	return Wrap(ExitFilesystem, fmt.Sprintf("filesystem %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *GenError {
	return Wrap(ExitConfigError, message, cause)
}

// ConfigRestoreError returns an error for a failure while restoring
// previously-mutated global configuration.
func ConfigRestoreError(setting string, cause error) *GenError {
	return Wrap(ExitConfigRestore, fmt.Sprintf("failed to restore %s", setting), cause)
}

// CatalogError returns an error for an unreadable or invalid catalog.
func CatalogError(message string, cause error) *GenError {
	return Wrap(ExitTemplateNotFound, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *GenError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
