// Package docs writes the generated documentation into a finished sandbox:
// a static preview configuration file and a rendered README.
package docs

import (
	"embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
)

//go:embed assets
var assets embed.FS

const (
	previewConfigName  = "preview.config.json"
	readmeName         = "README.md"
	readmeTemplatePath = "assets/README.md.tmpl"
)

var readmeTemplate = template.Must(template.ParseFS(assets, readmeTemplatePath))

// Data holds the values substituted into the rendered README.
type Data struct {
	DisplayName string
	PreviewURL  string
}

// Write copies the static preview config and renders the README into
// targetDir. It is deterministic and touches no external processes;
// the only failure mode is a filesystem error.
func Write(targetDir string, data Data) error {
	configData, err := assets.ReadFile("assets/" + previewConfigName)
	if err != nil {
		return errors.FilesystemError("read embedded preview config", err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, previewConfigName), configData, 0644); err != nil {
		return errors.FilesystemError("write preview config", err)
	}

	readme, err := os.Create(filepath.Join(targetDir, readmeName))
	if err != nil {
		return errors.FilesystemError("create README", err)
	}
	defer readme.Close()

	if err := readmeTemplate.Execute(readme, data); err != nil {
		return errors.FilesystemError("render README", err)
	}

	return nil
}
