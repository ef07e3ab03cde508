package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/config"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/pool"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/registry"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/sandbox"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/system"
)

var (
	debugOutput   bool
	localRegistry bool
	failFast      bool
	concurrency   int
	outputDir     string
	catalogPath   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [template-key]",
	Short: "Generate before/after sandboxes from the template catalog",
	Long: `Generates sandbox pairs for every template in the catalog, or for a
single template when a key is given.

Tasks run through a bounded worker pool. A failing template never stops
its siblings unless --fail-fast is set; the run exits zero as long as
every task settles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&debugOutput, "debug", false, "Stream child process output to the terminal")
	generateCmd.Flags().BoolVar(&localRegistry, "local-registry", false, "Route installs through the local package registry")
	generateCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop dispatching new tasks after the first failure")
	generateCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrency ceiling (defaults to configuration)")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output root for generated sandboxes")
	generateCmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the template catalog file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	return generateTemplates(cmd.Context(), key)
}

// generateTemplates is the shared entry point for generate and pick.
func generateTemplates(ctx context.Context, key string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if outputDir != "" {
		settings.OutputDir = outputDir
	}
	if catalogPath != "" {
		settings.CatalogPath = catalogPath
	}
	if concurrency > 0 {
		settings.Concurrency = concurrency
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	cat, err := catalog.Load(settings.CatalogPath)
	if err != nil {
		return err
	}

	var templates []*catalog.Template
	if key != "" {
		tpl, err := cat.Get(key)
		if err != nil {
			return err
		}
		templates = []*catalog.Template{tpl}
	} else {
		templates = cat.List()
	}
	if len(templates) == 0 {
		logInfo("Catalog %s has no templates", settings.CatalogPath)
		return nil
	}

	tasks := make([]sandbox.Task, len(templates))
	for i, tpl := range templates {
		tasks[i] = sandbox.Task{
			Template:      tpl,
			LocalRegistry: localRegistry,
			Debug:         debugOutput,
		}
	}

	runner := system.DefaultRunner()
	npm := registry.NewNPM(runner)

	if err := registry.TunePerformance(ctx, npm); err != nil {
		return errors.ConfigError("failed to tune package manager configuration", err)
	}

	builder := &sandbox.Builder{
		OutputRoot:         settings.OutputDir,
		Runner:             runner,
		Registry:           npm,
		LocalRegistryURL:   settings.LocalRegistryURL,
		CommandTimeout:     settings.CommandTimeout,
		CleanupNodeModules: settings.CleanupNodeModules,
	}

	logInfo("Generating %d sandbox(es) into %s", len(tasks), settings.OutputDir)
	start := time.Now()

	results := pool.RunAll(ctx, tasks, builder.Build, pool.Options{
		Concurrency: settings.Concurrency,
		FailFast:    failFast,
	})

	reportResults(results, time.Since(start))
	// Per-task failures are reported, not propagated: a settled run
	// exits zero so batch callers can inspect the output instead.
	return nil
}

func reportResults(results []pool.Result, elapsed time.Duration) {
	for _, r := range results {
		switch {
		case r.Err == nil:
			logSuccess("%s (%s)", r.Key, r.Elapsed.Round(time.Millisecond))
		case errors.Is(r.Err, pool.ErrSkipped):
			logWarning("%s skipped", r.Key)
		default:
			logError("%s failed: %v", r.Key, r.Err)
		}
	}

	s := pool.Summarize(results)
	logging.Debug("run settled",
		"total", s.Total, "succeeded", s.Succeeded, "failed", s.Failed, "skipped", s.Skipped)

	if s.Failed > 0 || s.Skipped > 0 {
		logWarning("Done in %s: %d succeeded, %d failed, %d skipped",
			elapsed.Round(time.Millisecond), s.Succeeded, s.Failed, s.Skipped)
		return
	}
	logSuccess("Done in %s: %d sandbox(es) generated", elapsed.Round(time.Millisecond), s.Succeeded)
}
