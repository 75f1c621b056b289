// Package cli wires configuration, persistence and observability into an engine
// for the command line tools.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/internal/config"
	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/internal/metrics"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"github.com/prometheus/client_golang/prometheus"
)

// App is a configured engine plus the resources it holds.
type App struct {
	Config  config.Config
	Engine  *gymnasion.Engine
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	registry *prometheus.Registry
	backend  *config.Backend
}

// NewApp builds an engine from cfg. The caller must Close the app.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.New(cfg.Level())
	}

	backend, err := cfg.OpenBackend(ctx, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		backend: backend,
	}

	opts := []gymnasion.Option{
		gymnasion.WithLogger(logger),
		gymnasion.WithStore(backend.Store),
		gymnasion.WithMaxInputSize(cfg.MaxInputSize),
	}
	if backend.Locker != nil {
		opts = append(opts, gymnasion.WithLocker(backend.Locker))
	}
	// Zero leaves the engine randomly seeded.
	if cfg.Seed != 0 {
		opts = append(opts, gymnasion.WithSeed(cfg.Seed))
	}
	if cfg.Lexicon != "" {
		lex, err := lexicon.Load(cfg.Lexicon)
		if err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		opts = append(opts, gymnasion.WithLexicon(lex))
		logger.Info("lexicon loaded", "path", cfg.Lexicon)
	}
	if cfg.Metrics {
		app.registry = prometheus.NewRegistry()
		app.Metrics = metrics.New(app.registry)
		opts = append(opts, gymnasion.WithLifecycleHooks(app.Metrics.Hooks()))
	}

	app.Engine = gymnasion.New(opts...)
	return app, nil
}

// MetricsHandler serves the app's metrics, or nil when metrics are disabled.
func (a *App) MetricsHandler() http.Handler {
	if a.registry == nil {
		return nil
	}
	return metrics.Handler(a.registry)
}

// Close releases the session backend.
func (a *App) Close() error {
	return a.backend.Close()
}
