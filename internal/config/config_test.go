package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 1024, cfg.SessionCap)
}

func TestAddrNormalization(t *testing.T) {
	cfg := &Config{Port: "9000"}
	assert.Equal(t, ":9000", cfg.Addr())
	cfg.Port = ":9000"
	assert.Equal(t, ":9000", cfg.Addr())
}

func TestKeyOverride(t *testing.T) {
	cfg := &Config{APIKey: "primary"}
	assert.Equal(t, "primary", cfg.Key())

	cfg.GeminiKey = "override"
	assert.Equal(t, "override", cfg.Key())

	cfg = &Config{GeminiKey: "  "}
	assert.Empty(t, cfg.Key())
}

func TestLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	cfg.LogLevel = "nonsense"
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}
