package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generrors "github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/shutdown"
)

// fakeSetting simulates a process-wide configuration value.
type fakeSetting struct {
	value    string
	readErr  error
	applyErr error
	applied  []string
}

func (s *fakeSetting) read() (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	return s.value, nil
}

func (s *fakeSetting) apply(v string) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.value = v
	s.applied = append(s.applied, v)
	return nil
}

func TestWithTemporaryValue_RestoresAfterSuccess(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "https://registry.npmjs.org/"}

	var during string
	err := WithTemporaryValue("registry", s.read, s.apply, "http://localhost:4873", func() error {
		during = s.value
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4873", during, "action should see the temporary value")
	assert.Equal(t, "https://registry.npmjs.org/", s.value, "original value must be restored")
}

func TestWithTemporaryValue_RestoresAfterActionFailure(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}
	actionErr := errors.New("installer exploded")

	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		return actionErr
	})

	require.ErrorIs(t, err, actionErr, "action error must be re-raised")
	assert.Equal(t, "original", s.value, "original value must be restored on failure")
}

func TestWithTemporaryValue_RestoresWhenActionPanics(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}

	func() {
		defer func() {
			require.NotNil(t, recover(), "the action's panic must propagate")
		}()
		WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
			panic("builder pipeline blew up")
		})
	}()

	assert.Equal(t, "original", s.value, "original value must be restored when the action panics")
}

func TestWithTemporaryValue_RestoreFailureDoesNotMaskActionError(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}
	actionErr := errors.New("installer exploded")

	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		s.applyErr = errors.New("npm is gone")
		return actionErr
	})

	require.ErrorIs(t, err, actionErr, "action error keeps precedence")
	assert.Contains(t, err.Error(), "npm is gone", "restore failure must still be surfaced")
}

func TestWithTemporaryValue_RestoreFailureAfterSuccess(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}

	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		s.applyErr = errors.New("npm is gone")
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, generrors.ExitConfigRestore, generrors.GetExitCode(err))
}

func TestWithTemporaryValue_ReadFailureSkipsApply(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{readErr: errors.New("config unreadable")}

	ran := false
	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		ran = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, ran, "action must not run when the current value cannot be read")
	assert.Empty(t, s.applied, "nothing should be applied")
}

func TestWithTemporaryValue_ShutdownHookIsNoopAfterExplicitRestore(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}

	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		return nil
	})
	require.NoError(t, err)

	// applied: temporary, original
	require.Len(t, s.applied, 2)

	shutdown.Run()

	assert.Len(t, s.applied, 2, "shutdown hook must not re-apply after explicit restore")
	assert.Equal(t, "original", s.value)
}

func TestWithTemporaryValue_ShutdownHookRestoresWhenProcessExitsMidAction(t *testing.T) {
	shutdown.Reset()
	defer shutdown.Reset()

	s := &fakeSetting{value: "original"}

	// Simulate a crash between apply and the deferred restore by
	// registering the hook and never reaching the restore: run the hooks
	// while the action is still in flight.
	err := WithTemporaryValue("registry", s.read, s.apply, "temporary", func() error {
		shutdown.Run()
		// The hook already restored the original value.
		if s.value != "original" {
			t.Errorf("value during simulated shutdown = %q, want original", s.value)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "original", s.value)
}
