// Package config loads optional file configuration for the limber CLI tool.
//
// The config file supplies defaults that flags may override: where the
// catalog lives, where transcripts are resolved from, and presentation
// preferences. A missing config file is not an error; every field has a
// usable zero or default value.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigPathEnv overrides the default config file location.
	ConfigPathEnv = "LIMBER_CONFIG"

	defaultTopN      = 2
	defaultSort      = "score"
	defaultChunkSize = 400
)

// Config holds file-level settings for the limber CLI.
type Config struct {
	// Catalog is the default catalog source (file path or URL).
	Catalog string `yaml:"catalog"`

	// TranscriptBase is joined in front of relative transcript refs
	// (a directory or URL prefix).
	TranscriptBase string `yaml:"transcriptBase"`

	// TranscriptSelector optionally isolates the transcript element in
	// HTML transcript pages.
	TranscriptSelector string `yaml:"transcriptSelector"`

	// TopN is how many positive-score sessions to recommend.
	TopN int `yaml:"topN"`

	// Sort is the default sort mode: score, length, or level.
	Sort string `yaml:"sort"`

	// ChunkSize is the passage size (characters) for deep search.
	ChunkSize int `yaml:"chunkSize"`

	// Quiet suppresses progress output.
	Quiet bool `yaml:"quiet"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	return Config{
		TopN:      defaultTopN,
		Sort:      defaultSort,
		ChunkSize: defaultChunkSize,
	}
}

// Load reads configuration from path. When path is empty it falls back to
// the LIMBER_CONFIG environment variable and then to the default location
// (~/.config/limber/config.yaml). A missing file yields Default(); a present
// but malformed file is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
		explicit = path != ""
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".config", "limber", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	// backstop invalid values with defaults
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.Sort == "" {
		cfg.Sort = defaultSort
	}

	return cfg, nil
}
