package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Services.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Services.Timeout)
	}
	if cfg.Moderation.ReviewThreshold != 0.5 {
		t.Errorf("expected review threshold 0.5, got %f", cfg.Moderation.ReviewThreshold)
	}
	if cfg.Moderation.FallbackConfidence != 0.9 {
		t.Errorf("expected fallback confidence 0.9, got %f", cfg.Moderation.FallbackConfidence)
	}
	if cfg.Storage.Type != "sqlite" {
		t.Errorf("expected sqlite storage, got %s", cfg.Storage.Type)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 9090
services:
  timeout: 10s
  entity:
    base_url: https://entity.example.com
    api_key: entity-key
  classifier:
    base_url: https://classify.example.com
    api_key: classify-key
  agent:
    base_url: https://agent.example.com
    api_key: agent-key
storage:
  type: memory
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Services.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Services.Timeout)
	}
	if cfg.Services.Entity.BaseURL != "https://entity.example.com" {
		t.Errorf("unexpected entity base URL: %s", cfg.Services.Entity.BaseURL)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("expected memory storage, got %s", cfg.Storage.Type)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MODERA_SERVER__PORT", "7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env-overridden port 7070, got %d", cfg.Server.Port)
	}
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("ENTITY_API_KEY", "secret-from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `services:
  entity:
    api_key: ${ENTITY_API_KEY}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Services.Entity.APIKey != "secret-from-env" {
		t.Errorf("expected substituted key, got %q", cfg.Services.Entity.APIKey)
	}
}
