package registry

import (
	"context"
	"strings"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/guard"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/shutdown"
)

// legacyPeerDepsMarker names the toolchain variant whose strict peer
// dependency resolution breaks the toolkit installer. Template keys
// containing it get relaxed strictness for the duration of the install.
const legacyPeerDepsMarker = "angular"

// WithRegistry points the package manager at url while action runs and
// unconditionally restores the previous registry afterwards, re-raising
// any error from the action.
func WithRegistry(ctx context.Context, m Manager, url string, action func() error) error {
	return guard.WithTemporaryValue("registry",
		func() (string, error) { return m.RegistryURL(ctx) },
		func(v string) error { return m.SetRegistryURL(ctx, v) },
		url, action)
}

// WithLegacyPeerDeps relaxes npm's peer-dependency strictness while action
// runs and restores the previous setting afterwards, even if action never
// completed.
func WithLegacyPeerDeps(ctx context.Context, m Manager, action func() error) error {
	return guard.WithTemporaryValue("legacy-peer-deps",
		func() (string, error) { return m.ConfigGet(ctx, "legacy-peer-deps") },
		func(v string) error { return m.ConfigSet(ctx, "legacy-peer-deps", v) },
		"true", action)
}

// NeedsLegacyPeerDeps reports whether a template key names the known
// incompatible toolchain variant.
func NeedsLegacyPeerDeps(key string) bool {
	return strings.Contains(key, legacyPeerDepsMarker)
}

// TunePerformance applies run-wide package manager tweaks before any task
// starts: prefer cached packages and skip audit checks. Restoration of each
// previous value is registered as a shutdown hook.
func TunePerformance(ctx context.Context, m Manager) error {
	settings := []struct {
		key   string
		value string
	}{
		{"prefer-offline", "true"},
		{"audit", "false"},
	}

	for _, s := range settings {
		original, err := m.ConfigGet(ctx, s.key)
		if err != nil {
			return err
		}
		if err := m.ConfigSet(ctx, s.key, s.value); err != nil {
			return err
		}
		logging.Debug("tuned package manager", "key", s.key, "value", s.value, "previous", original)

		key, previous := s.key, original
		shutdown.Register(func() {
			if err := m.ConfigSet(context.Background(), key, previous); err != nil {
				logging.Warn("failed to restore package manager setting", "key", key, "error", err)
			}
		})
	}

	return nil
}
