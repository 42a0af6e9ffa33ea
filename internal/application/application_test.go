package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/mytchallb/mytchall-dev/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	app := New(cfg, zaptest.NewLogger(t))

	if app.server == nil || app.router == nil {
		t.Fatalf("expected server and router to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.settings != cfg.Site {
		t.Fatalf("expected settings to be carried unchanged")
	}
}

func TestHandlerServesSettings(t *testing.T) {
	cfg := baseTestConfig(":0")
	app := New(cfg, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/site", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc["url"] != "https://example.com" {
		t.Fatalf("unexpected url %v", doc["url"])
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg.Server, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.Server.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.Server.WriteTimeout ||
		server.IdleTimeout != cfg.Server.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestStartAndShutdown(t *testing.T) {
	cfg := baseTestConfig("127.0.0.1:0")
	app := New(cfg, zaptest.NewLogger(t))

	if err := app.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Server().Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
}

func TestStartReportsBindError(t *testing.T) {
	cfg := baseTestConfig("127.0.0.1:99999")
	app := New(cfg, zaptest.NewLogger(t))

	if err := app.Start(); err == nil {
		t.Fatalf("expected bind error for invalid address")
	}
}

func baseTestConfig(port string) config.Config {
	site := config.Resolve(config.MapEnvironment(map[string]string{
		config.EnvURL: "https://example.com",
	}))
	return config.Config{
		Site: site,
		Server: config.ServerConfig{
			Port:                 port,
			ShutdownGracePeriod:  50 * time.Millisecond,
			ReadHeaderTimeout:    20 * time.Millisecond,
			WriteTimeout:         30 * time.Millisecond,
			IdleTimeout:          40 * time.Millisecond,
			EnableRequestLogging: false,
			RateLimitRPS:         0,
			RateLimitBurst:       0,
		},
	}
}
