// Package registry manages the package manager's process-wide configuration:
// the registry URL swap for local-registry installs, peer-dependency
// strictness relaxation, and run-wide performance tuning.
package registry

import (
	"context"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/system"
)

// configTimeout bounds npm config reads/writes. These touch a local file
// and should never take long; a hung npm must not wedge restoration.
const configTimeout = 30 * time.Second

// Manager abstracts the package manager's persistent configuration.
type Manager interface {
	// RegistryURL returns the currently configured registry URL.
	RegistryURL(ctx context.Context) (string, error)

	// SetRegistryURL points the package manager at url.
	SetRegistryURL(ctx context.Context, url string) error

	// ConfigGet reads an arbitrary configuration key.
	ConfigGet(ctx context.Context, key string) (string, error)

	// ConfigSet writes an arbitrary configuration key.
	ConfigSet(ctx context.Context, key, value string) error
}

// NPM implements Manager through the npm CLI.
type NPM struct {
	runner system.Runner
}

// NewNPM creates an NPM manager backed by the given command runner.
func NewNPM(runner system.Runner) *NPM {
	return &NPM{runner: runner}
}

func (n *NPM) RegistryURL(ctx context.Context) (string, error) {
	return n.ConfigGet(ctx, "registry")
}

func (n *NPM) SetRegistryURL(ctx context.Context, url string) error {
	return n.ConfigSet(ctx, "registry", url)
}

func (n *NPM) ConfigGet(ctx context.Context, key string) (string, error) {
	command := shellquote.Join("npm", "config", "get", key)
	res, err := n.runner.Run(ctx, command, system.RunOptions{Timeout: configTimeout})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

func (n *NPM) ConfigSet(ctx context.Context, key, value string) error {
	command := shellquote.Join("npm", "config", "set", key+"="+value)
	_, err := n.runner.Run(ctx, command, system.RunOptions{Timeout: configTimeout})
	return err
}
