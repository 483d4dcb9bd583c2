// Package app wires configuration into the build, preview and watch
// operations the snipdoc binary exposes.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/snipdoc/snipdoc/internal/lookup"
	"github.com/snipdoc/snipdoc/internal/server"
	"github.com/snipdoc/snipdoc/internal/site"
)

type App struct {
	cfg    Config
	lookup *lookup.Resolver
}

// New validates configuration and loads the lookup data file once; every
// subsequent build reuses the read-only resolver.
func New(cfg Config) (*App, error) {
	cfg.applyDefaults()

	res := lookup.Empty()
	if cfg.LookupData != "" {
		var err error
		res, err = lookup.Load(cfg.LookupData)
		if err != nil {
			return nil, fmt.Errorf("init lookup: %w", err)
		}
	}
	return &App{cfg: cfg, lookup: res}, nil
}

// Build renders the content tree once.
func (a *App) Build(ctx context.Context) error {
	_, err := site.Build(ctx, a.siteOptions())
	return err
}

// Serve builds once, then serves the output directory until ctx is canceled.
// With Watch enabled, content changes trigger rebuilds in the background; a
// failed rebuild keeps the previous output and logs the authoring error.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Build(ctx); err != nil {
		return err
	}

	if a.cfg.Watch {
		stop, err := a.watch(ctx)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer stop()
	}

	return server.New(a.cfg.Addr, a.cfg.OutDir).ListenAndServe(ctx)
}

func (a *App) siteOptions() site.Options {
	return site.Options{
		ContentDir: a.cfg.ContentDir,
		OutDir:     a.cfg.OutDir,
		BaseDir:    a.cfg.BaseDir,
		Language:   a.cfg.Language,
		GitHub:     a.cfg.GitHub,
		Lookup:     a.lookup,
		Workers:    a.cfg.Workers,
	}
}

func (a *App) rebuild(ctx context.Context) {
	if _, err := site.Build(ctx, a.siteOptions()); err != nil {
		log.Error().Err(err).Msg("rebuild failed; keeping previous output")
	}
}
