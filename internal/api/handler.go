package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mytchallb/mytchall-dev/internal/config"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves the resolved site settings. The settings are immutable, so
// handlers read them concurrently without locking.
type Handler struct {
	settings   config.SiteSettings
	resolvedAt time.Time

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler serving settings.
func NewHandler(settings config.SiteSettings, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: settings,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resolvedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSite(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Last-Modified", h.resolvedAt.Format(http.TimeFormat))
	writeJSON(w, http.StatusOK, h.settings)
}

func (h *Handler) handleGetSearch(w http.ResponseWriter, _ *http.Request) {
	search := h.settings.Search()
	resp := searchResponse{
		Enabled:    search.Enabled(),
		Configured: search.AppID().Present() && search.SearchAPIKey().Present() && search.SiteID().Present(),
		Branch:     search.Branch(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type searchResponse struct {
	Enabled    bool   `json:"enabled"`
	Configured bool   `json:"configured"`
	Branch     string `json:"branch"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
