package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProjectConfig(t *testing.T) {
	cfg := DefaultProjectConfig()

	if cfg == nil {
		t.Fatal("DefaultProjectConfig() returned nil")
	}

	if cfg.Version != "1.0" {
		t.Errorf("Version = %s, want 1.0", cfg.Version)
	}
	if cfg.Manifest != "extdoc.xml" {
		t.Errorf("Manifest = %s, want extdoc.xml", cfg.Manifest)
	}
	if cfg.Output.Dir != "docs" {
		t.Errorf("Output.Dir = %s, want docs", cfg.Output.Dir)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
	if cfg.Docs.ComponentRoot != "Ext.Component" {
		t.Errorf("Docs.ComponentRoot = %s, want Ext.Component", cfg.Docs.ComponentRoot)
	}
	if cfg.Docs.ShortLimit != 117 {
		t.Errorf("Docs.ShortLimit = %d, want 117", cfg.Docs.ShortLimit)
	}
	if !cfg.Docs.InheritFromExcluded {
		t.Error("Docs.InheritFromExcluded should be true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadProjectConfig_NoFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if cfg.Manifest != "extdoc.xml" {
		t.Errorf("Manifest = %s, want default", cfg.Manifest)
	}
}

func TestLoadProjectConfig_YAML(t *testing.T) {
	dir := t.TempDir()

	content := `version: "1.0"
manifest: sources.yaml
output:
  dir: build/api
  format: yaml
docs:
  component_root: My.Widget
  short_limit: 80
`
	if err := os.WriteFile(filepath.Join(dir, ".extdoc.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}

	if cfg.Manifest != "sources.yaml" {
		t.Errorf("Manifest = %s, want sources.yaml", cfg.Manifest)
	}
	if cfg.Output.Dir != "build/api" {
		t.Errorf("Output.Dir = %s, want build/api", cfg.Output.Dir)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %s, want yaml", cfg.Output.Format)
	}
	if cfg.Docs.ComponentRoot != "My.Widget" {
		t.Errorf("Docs.ComponentRoot = %s, want My.Widget", cfg.Docs.ComponentRoot)
	}
	if cfg.Docs.ShortLimit != 80 {
		t.Errorf("Docs.ShortLimit = %d, want 80", cfg.Docs.ShortLimit)
	}
	// Unset keys keep their defaults
	if cfg.Docs.FunctionKeyword != "function" {
		t.Errorf("Docs.FunctionKeyword = %s, want function", cfg.Docs.FunctionKeyword)
	}
}

func TestLoadProjectConfig_YMLExtension(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, ".extdoc.yml"), []byte("manifest: other.xml\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if cfg.Manifest != "other.xml" {
		t.Errorf("Manifest = %s, want other.xml", cfg.Manifest)
	}
}

func TestLoadProjectConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, ".extdoc.yaml"), []byte("output: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadProjectConfig(dir); err == nil {
		t.Error("LoadProjectConfig() should fail on malformed YAML")
	}
}

func TestLoadProjectConfig_FailsValidation(t *testing.T) {
	dir := t.TempDir()

	content := "output:\n  format: xml\n"
	if err := os.WriteFile(filepath.Join(dir, ".extdoc.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadProjectConfig(dir)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadProjectConfig() error = %v, want ErrInvalid", err)
	}
}

func TestProjectConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProjectConfig)
		wantErr bool
	}{
		{"defaults", func(c *ProjectConfig) {}, false},
		{"yaml format", func(c *ProjectConfig) { c.Output.Format = "yaml" }, false},
		{"unknown format", func(c *ProjectConfig) { c.Output.Format = "html" }, true},
		{"empty manifest", func(c *ProjectConfig) { c.Manifest = "" }, true},
		{"zero short limit", func(c *ProjectConfig) { c.Docs.ShortLimit = 0 }, true},
		{"empty component root", func(c *ProjectConfig) { c.Docs.ComponentRoot = "" }, true},
		{"empty link base", func(c *ProjectConfig) { c.Docs.LinkBase = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProjectConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveProjectConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultProjectConfig()
	cfg.Output.Dir = "site/api"
	cfg.Docs.LinkExtension = "htm"

	if err := SaveProjectConfig(dir, cfg); err != nil {
		t.Fatalf("SaveProjectConfig() error = %v", err)
	}

	loaded, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}

	if loaded.Output.Dir != "site/api" {
		t.Errorf("Output.Dir = %s, want site/api", loaded.Output.Dir)
	}
	if loaded.Docs.LinkExtension != "htm" {
		t.Errorf("Docs.LinkExtension = %s, want htm", loaded.Docs.LinkExtension)
	}
}

func TestProjectConfig_Merge(t *testing.T) {
	cfg := DefaultProjectConfig()

	cfg.Merge(&ProjectConfig{
		Manifest: "custom.xml",
		Output:   OutputConfig{Format: "yaml"},
		Docs:     DocsConfig{ShortLimit: 60},
	})

	if cfg.Manifest != "custom.xml" {
		t.Errorf("Manifest = %s, want custom.xml", cfg.Manifest)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %s, want yaml", cfg.Output.Format)
	}
	if cfg.Output.Dir != "docs" {
		t.Errorf("Output.Dir = %s, want docs (unchanged)", cfg.Output.Dir)
	}
	if cfg.Docs.ShortLimit != 60 {
		t.Errorf("Docs.ShortLimit = %d, want 60", cfg.Docs.ShortLimit)
	}
	if cfg.Docs.ComponentRoot != "Ext.Component" {
		t.Errorf("Docs.ComponentRoot = %s, want Ext.Component (unchanged)", cfg.Docs.ComponentRoot)
	}
}

func TestProjectConfig_MergeNil(t *testing.T) {
	cfg := DefaultProjectConfig()
	cfg.Merge(nil)

	if cfg.Manifest != "extdoc.xml" {
		t.Errorf("Manifest = %s, want extdoc.xml", cfg.Manifest)
	}
}
