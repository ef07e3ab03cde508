// Package catalog loads and validates the template catalog: the static
// recipes describing each sandbox to generate.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
)

// keySegmentRegex validates one path segment of a template key.
// Segments must start with a lowercase letter or digit, followed by
// lowercase letters, digits, dots, underscores, or hyphens.
var keySegmentRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,62}$`)

// Expected describes what flavor of output a template produces.
type Expected struct {
	// Renderer selects extra flags passed to the toolkit installer
	// (e.g. "html" forces --type html).
	Renderer string `toml:"renderer"`
}

// Template identifies one sandbox to build.
type Template struct {
	// Key is the unique catalog key, set from the catalog table name.
	// It may contain one grouping prefix, e.g. "community/astro".
	Key string `toml:"-"`

	// DisplayName is the human-readable label for logs and documentation.
	DisplayName string `toml:"display_name"`

	// InitScript is the scaffolding command. It may contain the
	// {{beforeDir}} placeholder, which selects self-naming mode.
	InitScript string `toml:"init_script"`

	// Expected describes the expected output shape.
	Expected Expected `toml:"expected"`
}

// Validate checks that the Template is usable.
func (t *Template) Validate() error {
	if err := ValidateKey(t.Key); err != nil {
		return err
	}
	if t.DisplayName == "" {
		return fmt.Errorf("template %s: display_name is required", t.Key)
	}
	if t.InitScript == "" {
		return fmt.Errorf("template %s: init_script is required", t.Key)
	}
	return nil
}

// ValidateKey checks that a template key is safe to use as an output
// subdirectory name. Keys may contain at most one grouping prefix
// separated by a slash; each segment must be a plain path segment.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("template key cannot be empty")
	}

	segments := strings.Split(key, "/")
	if len(segments) > 2 {
		return fmt.Errorf("invalid template key %q: at most one grouping prefix is allowed", key)
	}
	for _, segment := range segments {
		if !keySegmentRegex.MatchString(segment) {
			return fmt.Errorf("invalid template key %q: segment %q must start with a lowercase letter or digit and contain only lowercase letters, digits, dots, underscores, or hyphens", key, segment)
		}
	}

	return nil
}

// Catalog is the full mapping from template key to descriptor.
type Catalog struct {
	Templates map[string]*Template `toml:"templates"`
}

// Load reads and validates a catalog file. A catalog with no templates is
// valid; generating from one is a no-op.
func Load(path string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, errors.CatalogError(fmt.Sprintf("failed to load catalog %s", path), err)
	}

	for key, tpl := range c.Templates {
		tpl.Key = key
		if err := tpl.Validate(); err != nil {
			return nil, errors.CatalogError("invalid catalog entry", err)
		}
	}

	return &c, nil
}

// Get returns the template for key.
func (c *Catalog) Get(key string) (*Template, error) {
	tpl, ok := c.Templates[key]
	if !ok {
		return nil, errors.TemplateNotFound(key)
	}
	return tpl, nil
}

// List returns all templates sorted by key.
func (c *Catalog) List() []*Template {
	templates := make([]*Template, 0, len(c.Templates))
	for _, tpl := range c.Templates {
		templates = append(templates, tpl)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Key < templates[j].Key
	})
	return templates
}
