// Package config provides configuration management for remedy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
	// RemedyDir is the remedy configuration directory.
	RemedyDir = ".remedy"
)

// Duration wraps time.Duration so config files can use "5s"/"2m" forms.
type Duration time.Duration

// UnmarshalYAML parses durations from string form ("5s") or raw nanoseconds.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := unmarshal(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// MarshalYAML emits the string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	// Addr is the listen address for the API server.
	Addr string `yaml:"addr"`

	// StatsCacheTTL bounds how stale the cached aggregate stats may be.
	StatsCacheTTL Duration `yaml:"stats_cache_ttl"`
}

// Config represents the remedy configuration.
type Config struct {
	// Version is the config file version.
	Version int `yaml:"version"`

	// AgentLabel is the assignee recorded when the automated workflow
	// completes a task.
	AgentLabel string `yaml:"agent_label"`

	// SeedFile optionally points at a YAML task seed file. When empty
	// the built-in seed set is used.
	SeedFile string `yaml:"seed_file,omitempty"`

	// EventBufferSize is the per-subscriber event channel buffer.
	EventBufferSize int `yaml:"event_buffer_size"`

	// Server holds API server settings.
	Server ServerConfig `yaml:"server"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version:         1,
		AgentLabel:      "ai-agent",
		EventBufferSize: 100,
		Server: ServerConfig{
			Addr:          ":8080",
			StatsCacheTTL: Duration(2 * time.Second),
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.AgentLabel == "" {
		return remedyerrors.ErrConfigInvalid("agent_label", "must not be empty")
	}
	if c.EventBufferSize <= 0 {
		return remedyerrors.ErrConfigInvalid("event_buffer_size", "must be positive")
	}
	if c.Server.Addr == "" {
		return remedyerrors.ErrConfigInvalid("server.addr", "must not be empty")
	}
	if c.Server.StatsCacheTTL < 0 {
		return remedyerrors.ErrConfigInvalid("server.stats_cache_ttl", "must not be negative")
	}
	return nil
}

// Load loads configuration from the default location, falling back to
// defaults when no config file exists.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(RemedyDir, ConfigFileName))
}

// LoadFrom loads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, remedyerrors.ErrConfigInvalid(path, "not valid YAML").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save persists the configuration to a specific path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
