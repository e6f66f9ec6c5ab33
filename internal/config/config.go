// Package config loads the process-wide moderation service configuration.
// The configuration is read once at startup and is read-only afterwards;
// components receive it through their constructors, never as a global.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Services   ServicesConfig   `koanf:"services"`
	Moderation ModerationConfig `koanf:"moderation"`
	Storage    StorageConfig    `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// ServicesConfig holds the three outbound service endpoints. Each call is
// bounded by Timeout; there are no per-call retries.
type ServicesConfig struct {
	Entity     ServiceConfig `koanf:"entity"`
	Classifier ServiceConfig `koanf:"classifier"`
	Agent      ServiceConfig `koanf:"agent"`
	Timeout    time.Duration `koanf:"timeout"`
}

type ServiceConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

type ModerationConfig struct {
	// ReviewThreshold is the moderate-confidence score above which a
	// category counts toward the multi-category review flag.
	ReviewThreshold float64 `koanf:"review_threshold"`
	// FallbackConfidence is assigned to regex-fallback PII findings,
	// which carry no score from the network.
	FallbackConfidence float64 `koanf:"fallback_confidence"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // sqlite, memory
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// envVarPattern matches ${VAR_NAME} placeholders in config values.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads configuration from config.yaml (if present) with MODERA_
// environment variables taking precedence, then applies defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = "config.yaml"
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Environment variables override file config
	if err := k.Load(env.Provider("MODERA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "MODERA_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Services.Entity.APIKey = substituteEnvVars(cfg.Services.Entity.APIKey)
	cfg.Services.Classifier.APIKey = substituteEnvVars(cfg.Services.Classifier.APIKey)
	cfg.Services.Agent.APIKey = substituteEnvVars(cfg.Services.Agent.APIKey)

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("services.timeout") {
		k.Set("services.timeout", "30s")
	}
	if !k.Exists("moderation.review_threshold") {
		k.Set("moderation.review_threshold", 0.5)
	}
	if !k.Exists("moderation.fallback_confidence") {
		k.Set("moderation.fallback_confidence", 0.9)
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "sqlite")
	}
	if !k.Exists("storage.sqlite.path") {
		k.Set("storage.sqlite.path", "./data/modera.db")
	}
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
