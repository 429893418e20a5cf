package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/BobBjorklund/progressTracker/internal/core/identity"
)

// FileName is the config file inside the data directory.
const FileName = "config.yaml"

// Environment overrides
const (
	EnvDataDir            = "TRACKER_DATA_DIR"
	EnvLogLevel           = "TRACKER_LOG_LEVEL"
	EnvDefaultRequirement = "TRACKER_DEFAULT_REQUIREMENT"
)

// Config represents the tracker configuration
type Config struct {
	DataDir            string // resolved, never persisted
	LogLevel           string // debug, info, warn, error
	DefaultRequirement int    // used by "agent add" when --requirement is omitted
}

// fileConfig is the on-disk layout of config.yaml. A nil field was not set.
type fileConfig struct {
	LogLevel           string `yaml:"log_level,omitempty"`
	DefaultRequirement *int   `yaml:"default_requirement,omitempty"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataDir:            dir,
		LogLevel:           "info",
		DefaultRequirement: identity.DefaultRequirement,
	}, nil
}

// DefaultDataDir returns ~/.tracker.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tracker"), nil
}

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// ResolveDataDir returns TRACKER_DATA_DIR if set, otherwise ~/.tracker.
func ResolveDataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	return DefaultDataDir()
}

// Load resolves configuration.
// Resolution order: defaults, then TRACKER_DATA_DIR, then config.yaml in the
// data directory, then the remaining environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	dir, err := ResolveDataDir()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(dir)
	if err != nil {
		return nil, err
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if v := os.Getenv(EnvDefaultRequirement); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvDefaultRequirement, err)
		}
		cfg.DefaultRequirement = n
	}

	cfg.DefaultRequirement = identity.ClampRequirement(cfg.DefaultRequirement)
	return cfg, nil
}

// LoadFile returns the defaults overlaid with config.yaml from dataDir,
// without environment overrides.
func LoadFile(dataDir string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dataDir

	data, err := os.ReadFile(filepath.Join(dataDir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.DefaultRequirement != nil {
		cfg.DefaultRequirement = identity.ClampRequirement(*file.DefaultRequirement)
	}
	return cfg, nil
}

// SaveConfig writes config.yaml to the data directory
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	requirement := cfg.DefaultRequirement
	data, err := yaml.Marshal(fileConfig{LogLevel: cfg.LogLevel, DefaultRequirement: &requirement})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfg.DataDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
