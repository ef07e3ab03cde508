// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/shutdown"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/system"
)

// TestEnv holds the test environment: temp directories, a catalog file,
// and a mock runner installed as the process default.
type TestEnv struct {
	T           *testing.T
	TmpDir      string
	OutputDir   string
	CatalogPath string
	Runner      *system.MockRunner
}

// NewTestEnv creates a test environment. The mock runner is installed as
// the default system runner and simulates the external tools: scaffolding
// commands populate a project tree and the installer drops its config file.
// Defaults are restored when the test finishes.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	env := &TestEnv{
		T:           t,
		TmpDir:      tmpDir,
		OutputDir:   filepath.Join(tmpDir, "sandboxes"),
		CatalogPath: filepath.Join(tmpDir, "catalog.toml"),
		Runner:      system.NewMockRunner(),
	}

	env.Runner.AddResponse("npm config get registry", "https://registry.npmjs.org/\n", nil)
	env.Runner.AddResponse("npm config get legacy-peer-deps", "false\n", nil)
	env.Runner.AddResponse("npm config get prefer-offline", "false\n", nil)
	env.Runner.AddResponse("npm config get audit", "true\n", nil)
	env.Runner.Hook = simulateTools

	system.SetDefaultRunner(env.Runner)
	shutdown.Reset()
	t.Cleanup(func() {
		system.ResetDefaults()
		shutdown.Reset()
	})

	return env
}

// WriteCatalog writes catalog content to the environment's catalog path.
func (e *TestEnv) WriteCatalog(content string) {
	e.T.Helper()
	if err := os.WriteFile(e.CatalogPath, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write catalog: %v", err)
	}
}

// DefaultCatalog returns a small catalog covering both init modes.
func DefaultCatalog() string {
	return `
[templates.vite-react]
display_name = "Vite + React"
init_script = "npm create vite@latest {{beforeDir}} -- --template react"

[templates.vite-react.expected]
renderer = "react"

[templates.plain-html]
display_name = "Plain HTML"
init_script = "npm init --yes"

[templates.plain-html.expected]
renderer = "html"
`
}

// SandboxExists reports whether both snapshot directories were produced
// for a template key.
func (e *TestEnv) SandboxExists(key string) bool {
	for _, state := range []string{"before", "after"} {
		if _, err := os.Stat(filepath.Join(e.OutputDir, key, state)); err != nil {
			return false
		}
	}
	return true
}

// simulateTools fakes the side effects of the external commands.
func simulateTools(call system.MockCall) error {
	switch {
	case strings.HasPrefix(call.Command, "npm create"), strings.HasPrefix(call.Command, "yarn create"), strings.HasPrefix(call.Command, "pnpm create"):
		return scaffoldProject(filepath.Join(call.Dir, "before"))
	case strings.HasPrefix(call.Command, "npm init"):
		return scaffoldProject(call.Dir)
	case strings.HasPrefix(call.Command, "npx glowkit init"):
		return os.WriteFile(filepath.Join(call.Dir, "glowkit.config.js"), []byte("export default {}\n"), 0644)
	}
	return nil
}

// scaffoldProject fakes a scaffolded project tree, including content the
// before snapshot must filter out.
func scaffoldProject(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "node_modules", "dep"), 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"example"}`), 0644)
}
