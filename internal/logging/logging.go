package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the package-level structured logger. It is replaced by Setup
// and defaults to a text handler on stderr.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Verbose reports whether debug-level logging is enabled.
var Verbose bool

// Setup configures the package-level logger. When verbose is true,
// debug-level records are emitted. When jsonOutput is true, records are
// written as JSON. A nil writer falls back to stderr.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
}

// Debug logs a debug-level message with key-value attributes.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info-level message with key-value attributes.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning-level message with key-value attributes.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error-level message with key-value attributes.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger that includes the given attributes on every record.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
