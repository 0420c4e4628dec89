// Package config provides configuration management for wpcraft
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/filter"
	"git.sr.ht/~avern/wpcraft/validator"
)

// Config holds application configuration. The active filter (scope plus
// minimum score) lives here too: it is loaded at the start of each command
// and saved back explicitly when a command changes it.
type Config struct {
	StatePath  string  `yaml:"state-path"`
	CacheDir   string  `yaml:"cache-dir"`
	Scope      string  `yaml:"scope"`
	MinScore   float64 `yaml:"min-score,omitempty"`
	Resolution string  `yaml:"resolution"`
	ScriptPath string  `yaml:"script-path,omitempty"`
	LogLevel   string  `yaml:"log-level,omitempty"`
}

// New creates a configuration with defaults.
func New() *Config {
	return &Config{
		StatePath:  "~/.local/share/wpcraft/" + constants.StateFileName,
		CacheDir:   "~/.cache/wpcraft",
		Scope:      constants.DefaultScope,
		Resolution: constants.DefaultResolution,
		LogLevel:   "info",
	}
}

// DefaultPath returns the config file location, honoring WPCRAFT_CONFIG.
func DefaultPath() string {
	if path := os.Getenv(constants.ConfigEnvVar); path != "" {
		return path
	}
	return "~/.local/share/wpcraft/config.yml"
}

// Load reads the configuration at path. A missing file yields defaults; an
// unparseable one is an error rather than a silent reset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(Expand(path))
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config file %s is unparseable: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration with write-to-temp-then-rename.
func (c *Config) Save(path string) error {
	full := Expand(path)
	if err := os.MkdirAll(filepath.Dir(full), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close config file: %w", err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := filter.Parse(c.Scope); err != nil {
		return err
	}
	if c.Resolution != constants.DefaultResolution {
		if err := validator.ValidateResolution(c.Resolution); err != nil {
			return err
		}
	}
	if err := validator.ValidateMinScore(c.MinScore); err != nil {
		return err
	}
	if c.StatePath == "" {
		return validator.NewValidationError("state-path", c.StatePath, "cannot be empty")
	}
	if c.CacheDir == "" {
		return validator.NewValidationError("cache-dir", c.CacheDir, "cannot be empty")
	}
	return nil
}

// Filter returns the persisted active filter.
func (c *Config) Filter() (filter.Filter, error) {
	f, err := filter.Parse(c.Scope)
	if err != nil {
		return filter.Filter{}, err
	}
	f.MinScore = c.MinScore
	return f, nil
}

// SetFilter persists a new selection mode, replacing the previous one.
func (c *Config) SetFilter(f filter.Filter) {
	c.Scope = f.Scope()
}

// StateFile returns the expanded state database path.
func (c *Config) StateFile() string {
	return Expand(c.StatePath)
}

// CachePath returns the expanded cache directory.
func (c *Config) CachePath() string {
	return Expand(c.CacheDir)
}

// Expand resolves a leading ~ to the user's home directory. An empty path
// stays empty; optional paths like script-path rely on that.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
