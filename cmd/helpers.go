package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/cache"
	"github.com/slabcheck/slabcheck/internal/fetch"
	"github.com/slabcheck/slabcheck/internal/ident"
	"github.com/slabcheck/slabcheck/internal/pipeline"
)

// initCache opens the sqlite-backed cert cache. A cache that fails to open
// degrades to nil (always fetch fresh) rather than failing the command.
func initCache(ctx context.Context) (*cache.Policy, func()) {
	store, err := cache.NewSQLite(cfg.Cache.Path)
	if err != nil {
		zap.L().Warn("cache unavailable, fetching fresh", zap.Error(err))
		return nil, func() {}
	}
	if err := store.Migrate(ctx); err != nil {
		zap.L().Warn("cache migrate failed, fetching fresh", zap.Error(err))
		_ = store.Close()
		return nil, func() {}
	}
	policy := cache.NewPolicy(store, cfg.Cache.TTL(), cfg.Cache.MaxEntries)
	return policy, func() { _ = store.Close() }
}

// mustInitCache is initCache for commands that operate on the cache itself.
func mustInitCache(ctx context.Context) (*cache.Policy, func(), error) {
	store, err := cache.NewSQLite(cfg.Cache.Path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open cache")
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, eris.Wrap(err, "migrate cache")
	}
	policy := cache.NewPolicy(store, cfg.Cache.TTL(), cfg.Cache.MaxEntries)
	return policy, func() { _ = store.Close() }, nil
}

func newRunner(policy *cache.Policy) *pipeline.Runner {
	return &pipeline.Runner{
		Locator: ident.NewLocator(ident.TimerScheduler{}),
		Fetcher: fetch.NewClient(fetch.Options{
			BaseURL:    cfg.Reference.BaseURL,
			UserAgent:  cfg.Reference.UserAgent,
			Timeout:    cfg.Reference.Timeout(),
			RatePerSec: cfg.Reference.RatePerSec,
		}),
		Cache: policy,
	}
}
