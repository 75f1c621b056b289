package config_test

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/gymnasion/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat(string(rune(b)), 32)))
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "gymnasion:session:", cfg.RedisPrefix)
	assert.True(t, cfg.Metrics)
	assert.True(t, cfg.RedisLock)
	assert.Equal(t, 4096, cfg.MaxInputSize)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	enc, err := cfg.Encryption()
	require.NoError(t, err)
	assert.Nil(t, enc)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"GYMNASION_ADDR":                     "127.0.0.1:9000",
		"GYMNASION_LOG_LEVEL":                "debug",
		"GYMNASION_STORE":                    "redis",
		"GYMNASION_REDIS_DB":                 "2",
		"GYMNASION_SESSION_TTL":              "30m",
		"GYMNASION_ENCRYPTION_KEY":           key('a'),
		"GYMNASION_ENCRYPTION_FALLBACK_KEYS": key('b') + "," + key('c'),
		"GYMNASION_REDACT":                   `\d{3}-\d{4};[a-z]+@[a-z]+\.com`,
		"GYMNASION_SEED":                     "42",
		"GYMNASION_METRICS":                  "false",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, config.StoreRedis, cfg.Store)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.False(t, cfg.Metrics)
	assert.Len(t, cfg.RedactPatterns, 2)

	enc, err := cfg.Encryption()
	require.NoError(t, err)
	require.NotNil(t, enc)
	assert.Len(t, enc.ActiveKey, 32)
	assert.Len(t, enc.FallbackKeys, 2)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown store":  {"GYMNASION_STORE": "postgres"},
		"bad level":      {"GYMNASION_LOG_LEVEL": "loud"},
		"bad int":        {"GYMNASION_REDIS_DB": "two"},
		"short key":      {"GYMNASION_ENCRYPTION_KEY": base64.StdEncoding.EncodeToString([]byte("short"))},
		"not base64":     {"GYMNASION_ENCRYPTION_KEY": "%%%"},
		"zero max input": {"GYMNASION_MAX_INPUT_SIZE": "0"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("GYMNASION_STORE", "file")
	t.Setenv("GYMNASION_SESSION_DIR", "/tmp/sessions")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreFile, cfg.Store)
	assert.Equal(t, "/tmp/sessions", cfg.SessionDir)
}
