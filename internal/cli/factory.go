// Package cli wires Skylark components for the command-line entry points.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/skylark/internal/config"
	httpAdapter "github.com/aretw0/skylark/pkg/adapters/http"
	"github.com/aretw0/skylark/pkg/adapters/llm"
	"github.com/aretw0/skylark/pkg/adapters/mcp"
	"github.com/aretw0/skylark/pkg/adapters/redis"
	"github.com/aretw0/skylark/pkg/conversation"
	"github.com/aretw0/skylark/pkg/dispatch"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/aretw0/skylark/pkg/observability"
	"github.com/aretw0/skylark/pkg/ports"
	"github.com/aretw0/skylark/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App is the wired object graph shared by the serve, ask and mcp commands.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Executor *dispatch.Executor
	Tools    *registry.Registry
	Turns    *conversation.Handler

	closers []func() error
}

// AppOption overrides a collaborator, mostly for tests.
type AppOption func(*appOptions)

type appOptions struct {
	caller   ports.Caller
	model    ports.ChatModel
	noModel  bool
	registry *prometheus.Registry
}

// WithCaller replaces the Monday.com MCP subprocess caller.
func WithCaller(c ports.Caller) AppOption {
	return func(o *appOptions) { o.caller = c }
}

// WithModel replaces the configured LLM provider.
func WithModel(m ports.ChatModel) AppOption {
	return func(o *appOptions) { o.model = m }
}

// WithoutModel skips the turn handler; used when only the tool pipeline is served.
func WithoutModel() AppOption {
	return func(o *appOptions) { o.noModel = true }
}

// WithPrometheusRegistry registers metrics on reg instead of a fresh registry.
func WithPrometheusRegistry(reg *prometheus.Registry) AppOption {
	return func(o *appOptions) { o.registry = reg }
}

// NewApp wires caller, cache, dispatcher, registry and turn handler from cfg.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
		o.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewMetrics(o.registry),
		Gatherer: o.registry,
	}
	hooks := observability.LoggingHooks(logger).Merge(app.Metrics.Hooks())

	caller := o.caller
	if caller == nil {
		caller = mcp.NewCaller(cfg.Monday, mcp.WithCallerLogger(logger))
	}
	if cfg.Cache.Enabled() {
		cache, err := newCache(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, cache.Close)
		caller = dispatch.NewCachingCaller(caller, cache, cfg.Cache.TTL, logger)
		logger.Info("Tool result cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	d := dispatch.New(caller, dispatch.WithLogger(logger), dispatch.WithLifecycleHooks(hooks))
	app.Executor = dispatch.NewExecutor(d, logger, hooks)

	app.Tools = registry.NewRegistry()
	app.Tools.Register(monday.Tool(), app.Executor.Execute)

	if o.noModel {
		return app, nil
	}

	model := o.model
	if model == nil {
		m, err := llm.New(ctx, cfg.Model)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("error initializing model: %w", err)
		}
		model = m
	}

	app.Turns = conversation.NewHandler(model, app.Tools,
		conversation.WithLogger(logger),
		conversation.WithLifecycleHooks(hooks),
		conversation.WithMaxSteps(cfg.Limits.MaxSteps),
		conversation.WithCallOptions(cfg.Model.CallOptions()...),
	)
	return app, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig) (*redis.Cache, error) {
	cache := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		cache.Close()
		return nil, fmt.Errorf("redis cache unreachable at %s: %w", cfg.RedisAddr, err)
	}
	return cache, nil
}

// HTTPHandler exposes the turn handler over HTTP.
func (a *App) HTTPHandler() http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithRequestTimeout(a.Config.Server.RequestTimeout),
	}
	if a.Config.Server.Metrics {
		opts = append(opts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(a.Gatherer, promhttp.HandlerOpts{})))
	}
	return httpAdapter.NewHandler(a.Turns, opts...)
}

// Close releases external resources held by the app.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

