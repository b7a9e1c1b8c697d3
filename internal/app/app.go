// Package app is the composition root: it builds the HTTP client, API
// client, normalizer and repository in dependency order and hands out
// view stores bound to them.
package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Makepad-fr/tada/internal/api"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/metrics"
	"github.com/Makepad-fr/tada/internal/repository"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/transport"
)

// App wires one process-wide repository.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *prom.Registry
	Repo     *repository.Repository
}

// Option customizes New.
type Option func(*settings)

type settings struct {
	logOutput  io.Writer
	httpClient *http.Client
	registry   *prom.Registry
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) { s.logOutput = w }
}

// WithHTTPClient replaces the HTTP client, e.g. an httptest server's.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithRegistry registers client metrics on reg.
func WithRegistry(reg *prom.Registry) Option {
	return func(s *settings) { s.registry = reg }
}

// New builds the App from a validated config.
func New(cfg config.Config, opts ...Option) *App {
	s := settings{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}
	if s.registry == nil {
		s.registry = prom.NewRegistry()
	}

	logger := NewLogger(cfg, s.logOutput)
	httpClient := s.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: api.NewLoggingTransport(nil, logger),
		}
	}

	client := api.NewClient(cfg.BaseURL, api.WithHTTPClient(httpClient), api.WithLogger(logger))
	normalizer := transport.NewNormalizer(
		transport.WithRecorder(metrics.NewPrometheusRecorder(s.registry)),
		transport.WithLogger(logger),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Registry: s.registry,
		Repo:     repository.New(client, normalizer),
	}
}

// NewLogger builds the slog logger described by cfg.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel.Slog()}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *App) storeOptions(ctx context.Context) []store.Option {
	return []store.Option{store.WithContext(ctx), store.WithLogger(a.Logger)}
}

// ListStore opens the list screen state. Close it when the screen goes away.
func (a *App) ListStore(ctx context.Context) *store.ListStore {
	return store.NewListStore(a.Repo, a.storeOptions(ctx)...)
}

// DetailStore opens the detail screen state for id.
func (a *App) DetailStore(ctx context.Context, id int) *store.DetailStore {
	return store.NewDetailStore(a.Repo, id, a.storeOptions(ctx)...)
}

// CreateStore opens the create screen state.
func (a *App) CreateStore(ctx context.Context) *store.CreateStore {
	return store.NewCreateStore(a.Repo, a.storeOptions(ctx)...)
}

// LogCallSummary logs one debug line per operation and outcome with the
// number of API calls made so far.
func (a *App) LogCallSummary(ctx context.Context) {
	if !a.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	counts, err := metrics.CallCounts(a.Registry)
	if err != nil {
		a.Logger.Warn("call summary unavailable", logfields.Error(err))
		return
	}
	for _, c := range counts {
		a.Logger.LogAttrs(ctx, slog.LevelDebug, "client calls",
			logfields.Operation(c.Op), logfields.Outcome(c.Outcome), slog.Uint64("count", c.Count))
	}
}
