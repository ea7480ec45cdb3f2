package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/sachinth/koda/internal/config"
	"github.com/sachinth/koda/internal/inventory"
	"github.com/sachinth/koda/internal/logger"
	"github.com/sachinth/koda/internal/relay"
	"github.com/sachinth/koda/internal/router"
)

// Application wires the inventory reader and chat relay behind the
// HTTP surface consumed by the browser chat widget.
type Application struct {
	StartTime time.Time

	configMu  sync.RWMutex
	config    *config.Config
	server    *http.Server
	logger    *logger.StyledLogger
	registry  *router.RouteRegistry
	inventory *inventory.Reader
	relay     *relay.Client
	errCh     chan error
}

// New creates a new application instance
func New(startTime time.Time, logger *logger.StyledLogger) (*Application, error) {
	app := &Application{
		StartTime: startTime,
		logger:    logger,
		registry:  router.NewRouteRegistry(logger),
		errCh:     make(chan error, 1),
	}

	cfg, err := config.Load(func() {
		// Hot reloading of configuration file; rebuild the Ollama
		// facing components so endpoint/prompt changes take effect.
		if err := viper.ReadInConfig(); err != nil {
			logger.Error("Failed to re-read config file", "error", err)
			return
		}

		newConfig := config.DefaultConfig()
		if err := viper.Unmarshal(newConfig); err != nil {
			logger.Error("Failed to unmarshal new config", "error", err)
			return
		}

		app.applyConfig(newConfig)
		logger.Info("Configuration reloaded")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app.applyConfig(cfg)

	app.server = &http.Server{
		Addr:         cfg.Server.GetAddress(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      nil, // Will be set in Start()
	}

	return app, nil
}

// Start starts the application
func (a *Application) Start(ctx context.Context) error {
	go func() {
		select {
		case err := <-a.errCh:
			a.logger.Error("Server startup error", "error", err)
		case <-ctx.Done():
			return
		}
	}()

	a.startWebServer()

	cfg := a.getConfig()
	a.logger.InfoWithEndpoint("Relaying chat to", cfg.Ollama.Endpoint)
	a.logger.Info("Koda started", "bind", a.server.Addr)
	return nil
}

// Stop stops the application
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.getConfig().Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	return nil
}

func (a *Application) applyConfig(cfg *config.Config) {
	runner := &inventory.ExecRunner{
		Command: cfg.Ollama.ListCommand,
		Args:    cfg.Ollama.ListArgs,
	}

	a.configMu.Lock()
	defer a.configMu.Unlock()

	a.config = cfg
	a.inventory = inventory.NewReader(runner, cfg.Ollama.ListTimeout, a.logger)
	a.relay = relay.NewClient(cfg.Ollama.Endpoint, cfg.Chat.SystemPrompt, cfg.Ollama.ConnectTimeout, cfg.Ollama.ResponseTimeout, a.logger)
}

func (a *Application) getConfig() *config.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.config
}

func (a *Application) getInventory() *inventory.Reader {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.inventory
}

func (a *Application) getRelay() *relay.Client {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.relay
}
