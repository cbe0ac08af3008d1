// Package config loads the service configuration.
//
// Sources, lowest precedence first: built-in defaults, a YAML file, WAYFARER_*
// environment variables. Command flags are applied on top by the CLI.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable.
const EnvPrefix = "WAYFARER_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string         `mapstructure:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	HTTP     HTTPConfig     `mapstructure:"http" envPrefix:"HTTP_"`
	MCP      MCPConfig      `mapstructure:"mcp" envPrefix:"MCP_"`
	Store    StoreConfig    `mapstructure:"store" envPrefix:"STORE_"`
	Redis    RedisConfig    `mapstructure:"redis" envPrefix:"REDIS_"`
	Catalog  CatalogConfig  `mapstructure:"catalog" envPrefix:"CATALOG_"`
	Security SecurityConfig `mapstructure:"security" envPrefix:"SECURITY_"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr" env:"ADDR" validate:"required"`
	CORSOrigins  []string      `mapstructure:"cors_origins" env:"CORS_ORIGINS"`
	AuthRPS      float64       `mapstructure:"auth_rps" env:"AUTH_RPS" validate:"gt=0"`
	AuthBurst    int           `mapstructure:"auth_burst" env:"AUTH_BURST" validate:"gt=0"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT"`
}

// MCPConfig holds the MCP server configuration.
type MCPConfig struct {
	Transport string `mapstructure:"transport" env:"TRANSPORT" validate:"oneof=stdio sse"`
	Port      int    `mapstructure:"port" env:"PORT" validate:"gt=0"`
}

// StoreConfig selects the session store.
type StoreConfig struct {
	Backend string `mapstructure:"backend" env:"BACKEND" validate:"oneof=memory file redis"`
	Path    string `mapstructure:"path" env:"PATH"`
}

// RedisConfig holds the redis store and lock configuration.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" env:"ADDR"`
	Password string        `mapstructure:"password" env:"PASSWORD"`
	DB       int           `mapstructure:"db" env:"DB" validate:"gte=0"`
	Prefix   string        `mapstructure:"prefix" env:"PREFIX"`
	TTL      time.Duration `mapstructure:"ttl" env:"TTL"`
	Lock     bool          `mapstructure:"lock" env:"LOCK"`
	LockTTL  time.Duration `mapstructure:"lock_ttl" env:"LOCK_TTL"`
}

// CatalogConfig locates the place catalog.
// An empty path selects the built-in catalog; a directory is read as Loam documents.
type CatalogConfig struct {
	Path  string `mapstructure:"path" env:"PATH"`
	Watch bool   `mapstructure:"watch" env:"WATCH"`
}

// SecurityConfig holds the session store middlewares.
// Keys are base64-encoded 32-byte AES keys.
type SecurityConfig struct {
	EncryptionKey string   `mapstructure:"encryption_key" env:"ENCRYPTION_KEY"`
	FallbackKeys  []string `mapstructure:"fallback_keys" env:"FALLBACK_KEYS"`
	PIIPatterns   []string `mapstructure:"pii_patterns" env:"PII_PATTERNS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			CORSOrigins:  []string{"*"},
			AuthRPS:      1,
			AuthBurst:    5,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE streams stay open
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    ".wayfarer/sessions",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Prefix:  "wayfarer:session:",
			LockTTL: 30 * time.Second,
		},
	}
}

var validate = validator.New()

// Load builds the configuration from defaults, the optional YAML file at path and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      c,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New("invalid config: redis.addr is required for the redis backend")
	}
	if _, _, err := c.Security.Keys(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, p := range c.Security.PIIPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid config: pii pattern %q: %w", p, err)
		}
	}
	return nil
}

// SlogLevel converts LogLevel.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Keys decodes the encryption keys. A nil active key means encryption is off.
func (s SecurityConfig) Keys() ([]byte, [][]byte, error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, errors.New("fallback keys require an encryption key")
		}
		return nil, nil, nil
	}

	active, err := decodeKey(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption_key: %w", err)
	}

	fallbacks := make([][]byte, 0, len(s.FallbackKeys))
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback_keys[%d]: %w", i, err)
		}
		fallbacks = append(fallbacks, key)
	}
	return active, fallbacks, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("not base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
