package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/trackermeta/internal/fetch"
	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

// App wires the fetch client to the page extractors.
type App struct {
	cfg       Config
	pages     *fetch.Pages
	extractor *modarchive.Extractor
}

// Option customises New.
type Option func(*options)

type options struct {
	store *OffsetStore
	now   func() time.Time
}

// WithOffsetStore replaces the store derived from Config.OffsetsPath.
func WithOffsetStore(s *OffsetStore) Option {
	return func(o *options) { o.store = s }
}

// WithClock sets the clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New validates cfg and builds an App. Fields left at their zero value are
// filled from TRACKERMETA_* environment variables first. Layout offsets are
// loaded from the offset store when one is configured.
func New(cfg Config, opts ...Option) (*App, error) {
	ApplyEnvToConfig(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.store == nil && strings.TrimSpace(cfg.OffsetsPath) != "" {
		o.store = NewOffsetStore(cfg.OffsetsPath)
	}

	layout := modarchive.DefaultLayout()
	if o.store != nil {
		offsets, err := o.store.Load(layout.Offsets)
		if err != nil {
			return nil, fmt.Errorf("load offsets: %w", err)
		}
		layout = layout.WithOffsets(offsets)
		log.Debug().Str("path", o.store.Path).Interface("offsets", offsets).Msg("layout offsets loaded")
	}

	client := &fetch.Client{
		HTTPClient:        newHTTPClient(),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       cfg.Attempts,
		PerRequestTimeout: cfg.Timeout,
		MaxBackoff:        30 * time.Second,
		RedirectMaxHops:   5,
	}
	if cfg.RequestInterval > 0 {
		client.Limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}

	exOpts := []modarchive.Option{modarchive.WithLayout(layout)}
	if o.now != nil {
		exOpts = append(exOpts, modarchive.WithClock(o.now))
	}
	return &App{
		cfg:       cfg,
		pages:     &fetch.Pages{Client: client, BaseURL: cfg.BaseURL},
		extractor: modarchive.NewExtractor(exOpts...),
	}, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config { return a.cfg }

// Layout returns the page layout in use, including loaded offsets.
func (a *App) Layout() modarchive.Layout { return a.extractor.Layout() }

// Info fetches and extracts the detail record for id.
func (a *App) Info(ctx context.Context, id uint32) (modarchive.ModuleRecord, error) {
	body, err := a.pages.Detail(ctx, id)
	if err != nil {
		return modarchive.ModuleRecord{}, err
	}
	rec, err := a.extractor.Detail(body, id)
	if err != nil {
		return modarchive.ModuleRecord{}, fmt.Errorf("module %d: %w", id, err)
	}
	return rec, nil
}

// Search fetches the first results page for query.
func (a *App) Search(ctx context.Context, query string) ([]modarchive.SearchMatch, error) {
	body, err := a.pages.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	matches, err := a.extractor.Search(body)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return matches, nil
}

// Lookup resolves filename to a module id via search and returns the
// module's detail record. The exact filename match wins over rank.
func (a *App) Lookup(ctx context.Context, filename string) (modarchive.ModuleRecord, error) {
	logger := log.With().Str("lookup_id", uuid.NewString()).Str("filename", filename).Logger()

	matches, err := a.Search(ctx, filename)
	if err != nil {
		logger.Debug().Err(err).Msg("search failed")
		return modarchive.ModuleRecord{}, err
	}
	m, err := modarchive.FirstMatch(matches, filename)
	if err != nil {
		logger.Debug().Msg("search returned no matches")
		return modarchive.ModuleRecord{}, fmt.Errorf("search %q: %w", filename, err)
	}
	logger.Debug().Uint32("module_id", m.ID).Int("matches", len(matches)).Msg("resolved filename")

	rec, err := a.Info(ctx, m.ID)
	if err != nil {
		logger.Debug().Err(err).Uint32("module_id", m.ID).Msg("detail failed")
		return modarchive.ModuleRecord{}, err
	}
	logger.Info().Uint32("module_id", rec.ID).Bool("spotlit", rec.Spotlit).Msg("module resolved")
	return rec, nil
}
