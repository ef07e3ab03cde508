package cmd

import (
	"github.com/spf13/cobra"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/config"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a template to generate",
	Long: `Opens an interactive picker over the template catalog.

Use arrow keys or j/k to navigate, / to filter, Enter to generate the
selected template, q or Esc to quit.`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().BoolVar(&debugOutput, "debug", false, "Stream child process output to the terminal")
	pickCmd.Flags().BoolVar(&localRegistry, "local-registry", false, "Route installs through the local package registry")
}

func runPick(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(settings.CatalogPath)
	if err != nil {
		return err
	}

	templates := cat.List()
	if len(templates) == 0 {
		logInfo("Catalog %s has no templates", settings.CatalogPath)
		return nil
	}

	result, err := tui.RunPicker(templates)
	if err != nil {
		return err
	}

	logging.Debug("picker result", "action", result.Action)

	if result.Action == tui.ActionGenerate && result.Template != nil {
		return generateTemplates(cmd.Context(), result.Template.Key)
	}
	return nil
}
