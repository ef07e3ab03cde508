package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "sandbox-gen",
	Short: "Glowkit sandbox generation CLI",
	Long: `sandbox-gen builds before/after sandbox pairs for glowkit example projects.

For each catalog template it:
  - Scaffolds a fresh example project in a temporary directory
  - Snapshots the pristine project as before/
  - Runs the glowkit installer against it
  - Snapshots the converted project as after/`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
