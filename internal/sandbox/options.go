package sandbox

import (
	"time"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/registry"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/system"
)

// Task binds one template descriptor to a run context. It is created once
// per generation invocation and consumed by exactly one worker slot.
type Task struct {
	// Template is the catalog descriptor to build (required).
	Template *catalog.Template

	// LocalRegistry routes the installer through the alternate registry.
	LocalRegistry bool

	// Debug streams child-process output instead of suppressing it.
	Debug bool
}

// Builder generates sandboxes. One Builder serves the whole run; each Build
// call is independent.
type Builder struct {
	// OutputRoot is the persistent output root shared by all templates.
	OutputRoot string

	// Runner executes external scaffolding and installer commands.
	Runner system.Runner

	// Registry manages the package manager's global configuration.
	Registry registry.Manager

	// LocalRegistryURL is the alternate registry for local-registry tasks.
	LocalRegistryURL string

	// CommandTimeout bounds each external command.
	CommandTimeout time.Duration

	// CleanupNodeModules strips the dependency cache from after/ once the
	// sandbox is complete.
	CleanupNodeModules bool
}
