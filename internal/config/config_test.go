package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.AgentLabel != "ai-agent" {
		t.Errorf("AgentLabel = %q, want ai-agent", cfg.AgentLabel)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.AgentLabel != Default().AgentLabel {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
agent_label: remediation-bot
event_buffer_size: 32
server:
  addr: ":9090"
  stats_cache_ttl: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.AgentLabel != "remediation-bot" {
		t.Errorf("AgentLabel = %q, want remediation-bot", cfg.AgentLabel)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.StatsCacheTTL.Std() != 5*time.Second {
		t.Errorf("StatsCacheTTL = %v, want 5s", cfg.Server.StatsCacheTTL.Std())
	}
	if cfg.EventBufferSize != 32 {
		t.Errorf("EventBufferSize = %d, want 32", cfg.EventBufferSize)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("agent_label: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if !errors.Is(err, remedyerrors.ErrConfigInvalid("", "")) {
		t.Errorf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty agent label", func(c *Config) { c.AgentLabel = "" }},
		{"zero buffer", func(c *Config) { c.EventBufferSize = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"negative ttl", func(c *Config) { c.Server.StatsCacheTTL = Duration(-time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), RemedyDir, ConfigFileName)

	cfg := Default()
	cfg.AgentLabel = "batch-agent"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.AgentLabel != "batch-agent" {
		t.Errorf("AgentLabel = %q, want batch-agent", loaded.AgentLabel)
	}
}
