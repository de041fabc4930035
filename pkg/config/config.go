// Package config loads optional run defaults from a YAML file.
//
// Command-line flags always override config values; the config only
// supplies defaults for runs that do not specify them.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit
// config path is given.
const DefaultFile = ".repotext.yml"

// Config holds run defaults.
type Config struct {
	// Exclude lists glob patterns applied on every run.
	Exclude []string `yaml:"exclude"`
	// MaxFileSizeKB caps rendered file content; 0 means unlimited.
	MaxFileSizeKB int64 `yaml:"max_file_size_kb"`
	// OutputDir is where derived output paths are placed.
	OutputDir string `yaml:"output_dir"`
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxFileSizeKB < 0 {
		return nil, fmt.Errorf("config %s: max_file_size_kb must not be negative", path)
	}
	return &cfg, nil
}

// LoadDefault loads DefaultFile from the working directory, returning an
// empty config when the file does not exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}
