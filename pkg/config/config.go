// Package config handles loading and managing trlscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aresleonardo123/dashboard-trl/pkg/insight"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// Config is the top-level configuration for trlscope.
type Config struct {
	Scoring  scoring.Weights     `yaml:"scoring"`
	Insights insight.Thresholds  `yaml:"insights"`
	Fields   submission.FieldMap `yaml:"fields"`
	Source   SourceConfig        `yaml:"source"`
}

// SourceConfig controls where submissions and the answer dictionary come from.
type SourceConfig struct {
	FormURL        string `yaml:"form_url"`
	Username       string `yaml:"username"`
	PageSize       int    `yaml:"page_size"`
	MaxRetries     int    `yaml:"max_retries"`
	Timeout        int    `yaml:"timeout"` // seconds
	DatasetKey     string `yaml:"dataset_key"`
	DictionaryPath string `yaml:"dictionary_path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring:  scoring.Defaults(),
		Insights: insight.DefaultThresholds(),
		Fields:   submission.DefaultFields(),
		Source: SourceConfig{
			PageSize:       100,
			MaxRetries:     5,
			Timeout:        30,
			DatasetKey:     "submissions",
			DictionaryPath: "dictionary.csv",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the scoring pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Scoring.ApprovalThreshold <= 0 {
		return fmt.Errorf("scoring.approval_threshold must be positive, got %v", c.Scoring.ApprovalThreshold)
	}
	if c.Source.PageSize <= 0 {
		return fmt.Errorf("source.page_size must be positive, got %d", c.Source.PageSize)
	}
	if c.Source.MaxRetries < 0 {
		return fmt.Errorf("source.max_retries must not be negative, got %d", c.Source.MaxRetries)
	}
	if c.Fields.Name == "" || c.Fields.Level == "" {
		return fmt.Errorf("fields.name and fields.level are required")
	}
	return nil
}

// FindConfigFile looks for .trlscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".trlscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a given working directory.
// Uses ~/.cache/trlscope/<slug>/ to keep datasets out of the project tree.
func CacheDir(workDir string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "trlscope", dirSlug(workDir))
}

// dirSlug creates a filesystem-safe identifier from a path using its last
// two components (e.g. "user_program" from "/home/user/program").
func dirSlug(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Base(filepath.Dir(abs)) + "_" + filepath.Base(abs)
}
