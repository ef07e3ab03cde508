// Package guard provides scoped mutation of process-wide external
// configuration with guaranteed restoration.
package guard

import (
	"fmt"
	"sync"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/shutdown"
)

// WithTemporaryValue reads the current value of a named piece of
// process-wide configuration, applies value, runs action, and restores the
// original value afterwards regardless of the action's outcome.
//
// Restoration happens exactly once: the primary path is the deferred
// restore here, which also runs when the action panics; a shutdown hook is
// registered as well so the original value survives the process exiting
// before the explicit restore runs.
//
// If action fails, its error is returned even when restoration also fails;
// the restoration failure is attached to the message, never swallowed and
// never allowed to replace the action's error. If only restoration fails,
// a ConfigRestoreError is returned.
func WithTemporaryValue(name string, read func() (string, error), apply func(string) error, value string, action func() error) (err error) {
	original, err := read()
	if err != nil {
		return fmt.Errorf("reading current %s: %w", name, err)
	}

	if err := apply(value); err != nil {
		return fmt.Errorf("applying temporary %s: %w", name, err)
	}
	logging.Debug("applied temporary config value", "setting", name, "value", value)

	var (
		once       sync.Once
		restoreErr error
	)
	restore := func() error {
		once.Do(func() {
			restoreErr = apply(original)
			if restoreErr == nil {
				logging.Debug("restored config value", "setting", name, "value", original)
			}
		})
		return restoreErr
	}

	shutdown.Register(func() {
		if err := restore(); err != nil {
			logging.Warn("shutdown restore failed", "setting", name, "error", err)
		}
	})

	defer func() {
		rerr := restore()
		if rerr == nil {
			return
		}
		if err != nil {
			// The action's failure caused the restore attempt in the
			// first place, so it keeps precedence for the caller.
			err = fmt.Errorf("%w (restoring %s also failed: %v)", err, name, rerr)
			return
		}
		err = errors.ConfigRestoreError(name, rerr)
	}()

	return action()
}
