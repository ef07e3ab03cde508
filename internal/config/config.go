package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
)

// Defaults for the generation run.
const (
	DefaultOutputDir        = "sandboxes"
	DefaultCatalogPath      = "catalog.toml"
	DefaultConcurrency      = 1
	DefaultLocalRegistryURL = "http://localhost:4873"
	DefaultCommandTimeout   = 10 * time.Minute
)

// Settings holds the run configuration, resolved from defaults, an optional
// sandbox-gen.yaml, and SANDBOX_GEN_* environment variables.
type Settings struct {
	// OutputDir is the persistent output root; one subdirectory per
	// template key, each containing before/ and after/.
	OutputDir string `mapstructure:"output_dir"`

	// CatalogPath locates the template catalog file.
	CatalogPath string `mapstructure:"catalog"`

	// Concurrency is the ceiling on simultaneously in-flight builders.
	// It defaults to 1: builders mutate shared npm configuration, which
	// is not safe to hold in two different temporary states at once.
	Concurrency int `mapstructure:"concurrency"`

	// LocalRegistryURL is the alternate registry used with --local-registry.
	LocalRegistryURL string `mapstructure:"local_registry_url"`

	// CommandTimeout bounds each external scaffolding/installer command.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`

	// CleanupNodeModules removes the dependency cache from after/ once a
	// sandbox is generated (SANDBOX_GEN_CLEANUP_NODE_MODULES).
	CleanupNodeModules bool `mapstructure:"cleanup_node_modules"`
}

// Load resolves the run settings. A missing config file is not an error;
// an unreadable or malformed one is.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("catalog", DefaultCatalogPath)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("local_registry_url", DefaultLocalRegistryURL)
	v.SetDefault("command_timeout", DefaultCommandTimeout)
	v.SetDefault("cleanup_node_modules", false)

	v.SetEnvPrefix("SANDBOX_GEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("sandbox-gen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ConfigError("failed to read sandbox-gen.yaml", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return errors.ValidationError("output_dir cannot be empty")
	}
	if s.CatalogPath == "" {
		return errors.ValidationError("catalog path cannot be empty")
	}
	if s.Concurrency < 1 {
		return errors.ValidationError("concurrency must be at least 1")
	}
	if s.CommandTimeout <= 0 {
		return errors.ValidationError("command_timeout must be positive")
	}
	return nil
}
