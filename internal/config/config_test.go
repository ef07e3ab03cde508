package config

import (
	"os"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, DefaultOutputDir)
	}
	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", s.Concurrency)
	}
	if s.CommandTimeout != DefaultCommandTimeout {
		t.Errorf("CommandTimeout = %v, want %v", s.CommandTimeout, DefaultCommandTimeout)
	}
	if s.CleanupNodeModules {
		t.Error("CleanupNodeModules should default to false")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("SANDBOX_GEN_OUTPUT_DIR", "/tmp/out")
	t.Setenv("SANDBOX_GEN_CLEANUP_NODE_MODULES", "true")
	t.Setenv("SANDBOX_GEN_COMMAND_TIMEOUT", "2m")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", s.OutputDir)
	}
	if !s.CleanupNodeModules {
		t.Error("CleanupNodeModules should be true from env")
	}
	if s.CommandTimeout != 2*time.Minute {
		t.Errorf("CommandTimeout = %v, want 2m", s.CommandTimeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "output_dir: generated\nconcurrency: 2\n"
	if err := os.WriteFile(dir+"/sandbox-gen.yaml", []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	chdir(t, dir)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.OutputDir != "generated" {
		t.Errorf("OutputDir = %q, want generated", s.OutputDir)
	}
	if s.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", s.Concurrency)
	}
}

func TestValidate(t *testing.T) {
	valid := &Settings{
		OutputDir:      "out",
		CatalogPath:    "catalog.toml",
		Concurrency:    1,
		CommandTimeout: time.Minute,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() failed on valid settings: %v", err)
	}

	bad := *valid
	bad.Concurrency = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject concurrency 0")
	}

	bad = *valid
	bad.OutputDir = ""
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject empty output dir")
	}
}
