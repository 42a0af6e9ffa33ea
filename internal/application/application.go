package application

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mytchallb/mytchall-dev/internal/api"
	"github.com/mytchallb/mytchall-dev/internal/config"
)

// App encapsulates the settings API dependencies and HTTP server.
type App struct {
	settings config.SiteSettings
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New wires the resolved settings into the API router and HTTP server.
func New(cfg config.Config, logger *zap.Logger) *App {
	handler := api.NewHandler(cfg.Site)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.Server.EnableRequestLogging),
		api.WithRateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	)

	return &App{
		settings: cfg.Site,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg.Server, router),
	}
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start binds the listener and serves in a goroutine. Bind errors are
// returned directly; serve errors after startup are logged.
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return err
	}

	a.logger.Info("server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("site_url", a.settings.URL()),
		zap.Bool("search_enabled", a.settings.Search().Enabled()),
	)

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
