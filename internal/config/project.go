package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a project config fails validation
var ErrInvalid = errors.New("invalid project config")

// ProjectFile is the name of the project config file
const ProjectFile = ".extdoc.yaml"

// ProjectConfig represents a .extdoc.yaml file next to the sources
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Manifest listing the source files, relative to the project dir
	Manifest string `yaml:"manifest" validate:"required"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Extraction and resolution settings
	Docs DocsConfig `yaml:"docs"`
}

// OutputConfig controls where and how the model is written
type OutputConfig struct {
	Dir    string `yaml:"dir" validate:"required"`
	Format string `yaml:"format" validate:"oneof=json yaml"`
}

// DocsConfig controls extraction and hierarchy resolution
type DocsConfig struct {
	// Classes descending from this one are flagged as components
	ComponentRoot string `yaml:"component_root" validate:"required"`

	// Keyword that marks a function definition after a comment
	FunctionKeyword string `yaml:"function_keyword" validate:"required"`

	// Characters kept in truncated summaries
	ShortLimit int `yaml:"short_limit" validate:"min=1"`

	// Link targets for {@link} references
	LinkBase      string `yaml:"link_base"`
	LinkExtension string `yaml:"link_extension" validate:"required"`

	// Let @private/@ignore classes pass their members on to subclasses
	InheritFromExcluded bool `yaml:"inherit_from_excluded"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version:  "1.0",
		Manifest: "extdoc.xml",
		Output: OutputConfig{
			Dir:    "docs",
			Format: "json",
		},
		Docs: DocsConfig{
			ComponentRoot:       "Ext.Component",
			FunctionKeyword:     "function",
			ShortLimit:          117,
			LinkBase:            "output/",
			LinkExtension:       "html",
			InheritFromExcluded: true,
		},
	}
}

// LoadProjectConfig loads .extdoc.yaml (or .extdoc.yml) from the given
// directory, falling back to defaults when neither exists
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = filepath.Join(dir, ".extdoc.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .extdoc.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, ProjectFile), data, 0644)
}

// Validate checks the config against its constraints
func (c *ProjectConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Manifest != "" {
		c.Manifest = other.Manifest
	}

	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	if other.Docs.ComponentRoot != "" {
		c.Docs.ComponentRoot = other.Docs.ComponentRoot
	}

	if other.Docs.FunctionKeyword != "" {
		c.Docs.FunctionKeyword = other.Docs.FunctionKeyword
	}

	if other.Docs.ShortLimit != 0 {
		c.Docs.ShortLimit = other.Docs.ShortLimit
	}

	if other.Docs.LinkBase != "" {
		c.Docs.LinkBase = other.Docs.LinkBase
	}

	if other.Docs.LinkExtension != "" {
		c.Docs.LinkExtension = other.Docs.LinkExtension
	}
}
