// Package app assembles a fetcher.Session from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"marketfetch/internal/config"
	"marketfetch/internal/fetcher"
	"marketfetch/internal/httpx"
	"marketfetch/internal/provider"
	"marketfetch/internal/provider/ratelimit"
	"marketfetch/internal/provider/registry"
	"marketfetch/internal/store"
	"marketfetch/internal/store/postgres"
)

// App owns a session and the resources behind it.
type App struct {
	Session  *fetcher.Session
	Registry *registry.Registry
	Table    string

	db *postgres.Store
}

// Option adjusts how an App is built.
type Option func(*options)

type options struct {
	sleeper ratelimit.Sleeper
	store   store.Store
	http    registry.HTTPClient
}

// WithSleeper replaces the timer used for rate limit pauses.
func WithSleeper(s ratelimit.Sleeper) Option { return func(o *options) { o.sleeper = s } }

// WithStore uses st instead of opening cfg.Database.
func WithStore(st store.Store) Option { return func(o *options) { o.store = st } }

// WithHTTPClient replaces the shared outbound client.
func WithHTTPClient(c registry.HTTPClient) Option { return func(o *options) { o.http = c } }

// New validates cfg and builds the session it describes.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = httpx.New(time.Duration(cfg.Server.RequestTimeoutSec)*time.Second, logger.Named("http"))
	}

	reg := registry.New(o.http,
		registry.WithEndpoint(provider.AlphaVantage, cfg.AlphaVantage.Endpoint),
		registry.WithEndpoint(provider.YahooFinance, cfg.Yahoo.Endpoint),
	)
	limiter := ratelimit.NewThreshold(
		cfg.RateLimit.CallThreshold,
		time.Duration(cfg.RateLimit.PauseSec)*time.Second,
		o.sleeper,
		logger.Named("ratelimit"),
	)

	a := &App{Registry: reg, Table: cfg.Database.Table}
	sessionOpts := []fetcher.Option{
		fetcher.WithLimiter(limiter),
		fetcher.WithLogger(logger.Named("fetcher")),
	}
	switch {
	case o.store != nil:
		sessionOpts = append(sessionOpts, fetcher.WithStore(o.store))
	case cfg.Database.URL != "":
		db, err := postgres.Open(ctx, cfg.Database.URL, logger.Named("store"))
		if err != nil {
			return nil, err
		}
		if err := db.EnsureTable(ctx, cfg.Database.Table); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		sessionOpts = append(sessionOpts, fetcher.WithStore(db))
	}

	session, err := fetcher.New(cfg.Provider, cfg.Credential(), reg.Build, sessionOpts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Session = session

	logger.Info("session ready",
		zap.String("provider", string(session.Provider())),
		zap.Bool("credential", session.Credential() != ""),
		zap.Int("call_threshold", cfg.RateLimit.CallThreshold),
		zap.Bool("store", session.HasStore()))
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
