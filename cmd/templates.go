package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/config"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates in the catalog",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the template catalog file")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if catalogPath != "" {
		settings.CatalogPath = catalogPath
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tRENDERER\tINIT SCRIPT")
	fmt.Fprintln(w, "---\t----\t--------\t-----------")

	for _, t := range templates {
		renderer := t.Expected.Renderer
		if renderer == "" {
			renderer = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Key, t.DisplayName, renderer, t.InitScript)
	}

	return w.Flush()
}
