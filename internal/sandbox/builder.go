package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/docs"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/registry"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/system"
)

const (
	// beforeDirName is the reserved name for the scaffolded project inside
	// the temporary root, and the before-snapshot directory name.
	beforeDirName = "before"
	afterDirName  = "after"

	// beforeDirPlaceholder in an init script selects self-naming mode:
	// the scaffolding tool creates the directory itself.
	beforeDirPlaceholder = "{{beforeDir}}"

	// depCacheDirName and vcsMetadataDirName are filtered from before
	// snapshots and never part of the distributed artifact.
	depCacheDirName    = "node_modules"
	vcsMetadataDirName = ".git"

	// pmHintEnvVar tells scaffolding tools which package manager invoked
	// them, so they do not guess incorrectly in ambiguous environments.
	pmHintEnvVar = "npm_config_user_agent"

	// telemetryEnvVar disables the toolkit's usage telemetry during
	// installer runs.
	telemetryEnvVar = "GLOWKIT_TELEMETRY_DISABLED"

	installerBaseCommand = "npx glowkit init --yes"

	previewURLBase = "https://stackblitz.com/github/glowkit-dev/glowkit/tree/main/sandboxes"
)

// rendererTypeFlags maps renderer tags to the installer's variant-selection
// flag value. Renderers not listed use the installer's default.
var rendererTypeFlags = map[string]string{
	"html": "html",
	"vue":  "vue",
}

// Build runs the full pipeline for one task. A failure aborts only this
// task; the output directory must then be treated as invalid.
func (b *Builder) Build(ctx context.Context, task Task) error {
	start := time.Now()
	tpl := task.Template
	log := logging.With("template", tpl.Key)

	baseDir, err := securejoin.SecureJoin(b.OutputRoot, tpl.Key)
	if err != nil {
		return errors.FilesystemError("resolve output directory", err)
	}

	// Stale files from a previous run must never survive into a fresh
	// generation: empty the output directory, never merge into it.
	if err := os.RemoveAll(baseDir); err != nil {
		return errors.FilesystemError("clear output directory", err)
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return errors.FilesystemError("create output directory", err)
	}

	tempRoot, err := os.MkdirTemp("", "sandbox-gen-*")
	if err != nil {
		return errors.FilesystemError("create temp root", err)
	}
	log.Debug("temp root created", "path", tempRoot)

	if err := b.generate(ctx, task, baseDir, tempRoot, log); err != nil {
		// The temp root is deliberately left in place so a failed
		// scaffold or install can be inspected.
		log.Warn("task failed, leaving temp root in place", "path", tempRoot, "error", err)
		return err
	}

	if err := os.RemoveAll(tempRoot); err != nil {
		return errors.FilesystemError("remove temp root", err)
	}

	log.Info("sandbox generated", "elapsed", time.Since(start).Round(time.Millisecond).String())
	return nil
}

// generate runs the scaffold → snapshot → install → promote → document
// sequence once the output directory and temp root exist.
func (b *Builder) generate(ctx context.Context, task Task, baseDir, tempRoot string, log *slog.Logger) error {
	tpl := task.Template

	initDir, err := b.scaffold(ctx, tpl, tempRoot, task.Debug)
	if err != nil {
		return err
	}
	log.Debug("scaffolding complete", "initDir", initDir)

	beforeDir := filepath.Join(baseDir, beforeDirName)
	if err := copyFiltered(initDir, beforeDir, snapshotFilter); err != nil {
		return errors.FilesystemError("snapshot before state", err)
	}
	log.Debug("before snapshot written", "path", beforeDir)

	if err := b.install(ctx, task, initDir); err != nil {
		return err
	}
	log.Debug("toolkit installed")

	afterDir := filepath.Join(baseDir, afterDirName)
	if err := moveDir(initDir, afterDir); err != nil {
		return errors.FilesystemError("promote after state", err)
	}

	if err := docs.Write(afterDir, docs.Data{
		DisplayName: tpl.DisplayName,
		PreviewURL:  previewURL(tpl.Key),
	}); err != nil {
		return err
	}

	if b.CleanupNodeModules {
		if err := os.RemoveAll(filepath.Join(afterDir, depCacheDirName)); err != nil {
			return errors.FilesystemError("strip dependency cache", err)
		}
		log.Debug("dependency cache stripped from after state")
	}

	return nil
}

// scaffold runs the template's init script and returns the directory
// containing the scaffolded project.
//
// Mode A (self-naming): the script contains the before-directory
// placeholder; the tool runs in the temp root and creates the directory
// itself under the reserved name.
//
// Mode B (directory-agnostic): the subdirectory is pre-created and used as
// the working directory directly, with no substitution.
func (b *Builder) scaffold(ctx context.Context, tpl *catalog.Template, tempRoot string, debug bool) (string, error) {
	initDir := filepath.Join(tempRoot, beforeDirName)

	opts := system.RunOptions{
		Timeout:       b.CommandTimeout,
		InheritOutput: debug,
	}

	if strings.Contains(tpl.InitScript, beforeDirPlaceholder) {
		script := strings.ReplaceAll(tpl.InitScript, beforeDirPlaceholder, beforeDirName)
		opts.Dir = tempRoot
		opts.Env = map[string]string{
			pmHintEnvVar: pmUserAgent(preferredPackageManager(tpl.InitScript)),
		}
		if _, err := b.Runner.Run(ctx, script, opts); err != nil {
			return "", errors.ProcessFailed("scaffolding", err)
		}
		return initDir, nil
	}

	if err := os.MkdirAll(initDir, 0755); err != nil {
		return "", errors.FilesystemError("create init directory", err)
	}
	opts.Dir = initDir
	if _, err := b.Runner.Run(ctx, tpl.InitScript, opts); err != nil {
		return "", errors.ProcessFailed("scaffolding", err)
	}
	return initDir, nil
}

// install invokes the toolkit installer inside the scaffolded project,
// wrapped in the registry swap and peer-dependency guards as required.
func (b *Builder) install(ctx context.Context, task Task, initDir string) error {
	tpl := task.Template

	command := installerCommand(tpl)
	opts := system.RunOptions{
		Dir:           initDir,
		Timeout:       b.CommandTimeout,
		InheritOutput: task.Debug,
		Env:           map[string]string{telemetryEnvVar: "1"},
	}

	run := func() error {
		if _, err := b.Runner.Run(ctx, command, opts); err != nil {
			return errors.ProcessFailed("installer", err)
		}
		return nil
	}

	if registry.NeedsLegacyPeerDeps(tpl.Key) {
		inner := run
		run = func() error { return registry.WithLegacyPeerDeps(ctx, b.Registry, inner) }
	}

	if task.LocalRegistry {
		inner := run
		run = func() error { return registry.WithRegistry(ctx, b.Registry, b.LocalRegistryURL, inner) }
	}

	return run()
}

// installerCommand builds the toolkit installer invocation for a template.
// Confirmation is always forced non-interactive; certain renderer tags add
// the variant-selection flag.
func installerCommand(tpl *catalog.Template) string {
	command := installerBaseCommand
	if variant, ok := rendererTypeFlags[tpl.Expected.Renderer]; ok {
		command += " --type " + variant
	}
	return command
}

// preferredPackageManager inspects the first word of an init script. A
// script invoked through yarn or pnpm marks that manager as preferred;
// everything else defaults to npm.
func preferredPackageManager(script string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(script), " ")
	switch first {
	case "yarn":
		return "yarn"
	case "pnpm":
		return "pnpm"
	default:
		return "npm"
	}
}

// pmUserAgent formats the package manager hint the way scaffolding tools
// expect to find it in npm_config_user_agent.
func pmUserAgent(pm string) string {
	return fmt.Sprintf("%s/0.0.0 sandbox-gen", pm)
}

// previewURL derives the external preview link for a generated sandbox.
func previewURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", previewURLBase, key, afterDirName)
}

// snapshotFilter names the path segments excluded from before snapshots.
var snapshotFilter = map[string]bool{
	depCacheDirName:    true,
	vcsMetadataDirName: true,
}
