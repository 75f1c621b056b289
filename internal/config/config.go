// Package config loads runtime configuration from the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/pkg/persistence/middleware"
	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the process configuration. Every field maps to a GYMNASION_* variable.
type Config struct {
	Addr     string `env:"GYMNASION_ADDR" envDefault:":8080"`
	LogLevel string `env:"GYMNASION_LOG_LEVEL" envDefault:"info"`

	Store      string        `env:"GYMNASION_STORE" envDefault:"memory"`
	SessionDir string        `env:"GYMNASION_SESSION_DIR" envDefault:".gymnasion/sessions"`
	SessionTTL time.Duration `env:"GYMNASION_SESSION_TTL" envDefault:"24h"`

	RedisAddr     string `env:"GYMNASION_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"GYMNASION_REDIS_PASSWORD"`
	RedisDB       int    `env:"GYMNASION_REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"GYMNASION_REDIS_PREFIX" envDefault:"gymnasion:session:"`
	RedisLock     bool   `env:"GYMNASION_REDIS_LOCK" envDefault:"true"`

	// EncryptionKey is a base64 AES-256 key. Empty disables sealing.
	EncryptionKey  string   `env:"GYMNASION_ENCRYPTION_KEY"`
	FallbackKeys   []string `env:"GYMNASION_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
	RedactPatterns []string `env:"GYMNASION_REDACT" envSeparator:";"`

	// Lexicon is an optional YAML or JSON catalog replacing the embedded one.
	Lexicon      string `env:"GYMNASION_LEXICON"`
	Metrics      bool   `env:"GYMNASION_METRICS" envDefault:"true"`
	Seed         uint64 `env:"GYMNASION_SEED"`
	MaxInputSize int    `env:"GYMNASION_MAX_INPUT_SIZE" envDefault:"4096"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q (want memory, file or redis)", c.Store))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("session ttl must not be negative"))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, errors.New("max input size must be positive"))
	}
	if _, err := c.Encryption(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. Invalid levels fall back to info.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Encryption decodes the configured keys. It returns nil when no key is set.
func (c Config) Encryption() (*middleware.EncryptionConfig, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	active, err := decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	cfg := &middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range c.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return key, nil
}
