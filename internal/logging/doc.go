// Package logging provides logging utilities for sandbox-gen.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("scaffolding template", "key", key, "script", script)
//	logging.Warn("temp root left in place", "path", tempRoot)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Generating %d sandboxes...", len(tasks))
//	logging.UserSuccess("%s generated in %s", key, elapsed)
//	logging.UserWarning("Skipped %s after earlier failure", key)
//	logging.UserError("Failed to generate %s: %v", key, err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
