package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gravitrone/mailsearch/cli/internal/api"
	"github.com/gravitrone/mailsearch/cli/internal/bookmarks"
	"github.com/gravitrone/mailsearch/cli/internal/config"
	"github.com/gravitrone/mailsearch/cli/internal/logging"
)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	URL      string
	PageSize int
}

// Bind registers the persistent flags on root.
func (g *Globals) Bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&g.URL, "url", "", "search API base URL (overrides config and "+config.EnvBaseURL+")")
	flags.IntVar(&g.PageSize, "page-size", 0, "results per page (overrides config)")
}

// Env is the loaded configuration plus the resources a command opened from it.
type Env struct {
	Config *config.Config
	Logger *slog.Logger

	closers []func() error
}

// Env loads config, applies flag overrides and starts file logging.
func (g *Globals) Env() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.URL != "" {
		cfg.BaseURL = g.URL
	}
	if g.PageSize != 0 {
		cfg.PageSize = g.PageSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.Setup(logging.Path(), level)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return &Env{Config: cfg, Logger: logger, closers: []func() error{closeLog}}, nil
}

// Client builds an API client from the config.
func (e *Env) Client() *api.Client {
	cb := e.Config.CircuitBreaker
	return api.NewClient(e.Config.BaseURL, api.Options{
		Timeout:           e.Config.Timeout,
		RequestsPerMinute: e.Config.RateLimitPerMinute,
		Breaker: api.BreakerSettings{
			Enabled:          cb.Enabled,
			MaxRequests:      cb.MaxRequests,
			Interval:         cb.Interval,
			Timeout:          cb.Timeout,
			ReadyToTripRatio: cb.ReadyToTripRatio,
		},
		Logger: e.Logger,
	})
}

// Bookmarks opens the on-disk bookmark book. It is closed with the Env.
func (e *Env) Bookmarks(ctx context.Context) (*bookmarks.Book, error) {
	store, err := bookmarks.OpenBadger(e.Config.BookmarksPath(), false, e.Logger)
	if err != nil {
		return nil, err
	}
	book, err := bookmarks.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	e.closers = append(e.closers, book.Close)
	return book, nil
}

// Close releases everything the Env opened, most recent first.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// withEnv runs fn with a fresh Env and closes it afterwards.
func withEnv(g *Globals, fn func(*Env) error) error {
	env, err := g.Env()
	if err != nil {
		return err
	}
	runErr := fn(env)
	if err := env.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
