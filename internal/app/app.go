// Package app wires configuration, the gateway client, the session registry
// and the HTTP server into one runnable unit.
package app

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"chronolink/internal/config"
	"chronolink/internal/gemini"
	"chronolink/internal/server"
	"chronolink/internal/session"
)

type App struct {
	srv *server.Server
	log zerolog.Logger
}

// New loads config and assembles the service. A missing API key is not fatal
// here: the server starts and every gateway call reports the configuration
// error, matching the serverless boundary this replaces.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zerolog.New(os.Stderr).Level(cfg.Level()).With().Timestamp().Logger()
	log.Info().
		Str("env", cfg.Env).
		Str("addr", cfg.Addr()).
		Int("session_cap", cfg.SessionCap).
		Bool("api_key_present", cfg.Key() != "").
		Msg("configuration loaded")

	var inv gemini.Invoker
	if key := cfg.Key(); key != "" {
		client, err := gemini.NewClient(ctx, key, log.With().Str("component", "gemini").Logger())
		if err != nil {
			return nil, err
		}
		inv = client
	} else {
		log.Warn().Msg("API_KEY is not set; gateway calls will fail until configured")
		inv = gemini.Unconfigured()
	}

	sessions, err := session.NewRegistry(cfg.SessionCap, inv, log.With().Str("component", "session").Logger())
	if err != nil {
		return nil, err
	}

	handlers := server.NewHandlers(inv, sessions, log.With().Str("component", "http").Logger())
	srv := server.New(cfg.Addr(), handlers.Router(), log)

	return &App{srv: srv, log: log}, nil
}

func (a *App) Start() error { return a.srv.Start() }

func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info().Msg("shutting down")
	return a.srv.Shutdown(ctx)
}
