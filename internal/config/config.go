// Package config loads server settings from the environment, with an
// optional .env file for local runs. The Gemini secret stays server-side;
// nothing here is ever echoed back over HTTP.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"APP_ENV" default:"local"`

	// APIKey is the required upstream secret; GeminiKey overrides it when
	// both are set.
	APIKey    string `envconfig:"API_KEY"`
	GeminiKey string `envconfig:"GEMINI_KEY"`

	// SessionCap bounds the number of live simulated sessions.
	SessionCap int `envconfig:"SESSION_CAP" default:"1024"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Key resolves the upstream secret, preferring the override name.
func (c *Config) Key() string {
	if k := strings.TrimSpace(c.GeminiKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.APIKey)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
