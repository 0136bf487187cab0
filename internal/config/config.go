package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsonize
type Config struct {
	// Compact renders minimal JSON instead of the pretty 4-space form.
	Compact bool `yaml:"compact" toml:"compact"`
	// Rekey rewrites object keys in the named style (camel, pascal,
	// snake or kebab); empty keeps keys unchanged.
	Rekey string `yaml:"rekey" toml:"rekey"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Compact: false,
		Rekey:   "",
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by the
// file extension
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{
		".jsonize.yml", ".jsonize.yaml", ".jsonize.toml",
		"jsonize.yml", "jsonize.yaml", "jsonize.toml",
	}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence: flags
// override file values, file values override defaults. A flag left at its
// default does not mask the config file.
func LoadConfigWithCLI(configPath string, cliCompact bool, cliRekey string) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Apply CLI overrides only when they differ from the defaults, so that
	// config file values survive unset flags.
	if cliCompact {
		cfg.Compact = true
	}
	if cliRekey != "" {
		cfg.Rekey = cliRekey
	}

	return cfg, nil
}
