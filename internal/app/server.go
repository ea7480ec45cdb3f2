package app

import (
	"errors"
	"net/http"

	"github.com/sachinth/koda/internal/app/middleware"
)

const (
	ContentTypeJSON   = "application/json"
	ContentTypeHTML   = "text/html; charset=utf-8"
	ContentTypeHeader = "Content-Type"
)

func (a *Application) startWebServer() {
	cfg := a.getConfig()
	a.logger.Info("Starting WebServer...", "host", cfg.Server.Host, "port", cfg.Server.Port)

	mux := http.NewServeMux()

	a.registerRoutes()
	a.registry.WireUp(mux)

	var handler http.Handler = mux
	if cfg.Server.RequestLogging {
		handler = middleware.RequestLogging(mux)
	}
	a.server.Handler = handler

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", "error", err)
			a.errCh <- err
		}
	}()

	a.logger.Info("Started WebServer", "bind", a.server.Addr)
}

func (a *Application) registerRoutes() {
	a.registry.Register("/", a.uiHandler, "Browser chat widget")
	a.registry.Register("/api/v0/models", a.modelsHandler, "Installed model inventory")
	a.registry.RegisterWithMethod("/api/v0/chat", a.chatHandler, "Chat relay", http.MethodPost)
	a.registry.RegisterWithMethod("/api/v0/generate", a.generateHandler, "One-shot generate", http.MethodPost)
	a.registry.Register("/internal/health", a.healthHandler, "Health check endpoint")
	a.registry.Register("/internal/version", a.versionHandler, "Version information")
	a.registry.Register("/internal/process", a.processStatsHandler, "Process runtime stats")
}
