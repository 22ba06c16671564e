package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/playcall/internal/adapters/cache"
	"github.com/okian/playcall/internal/adapters/source"
	"github.com/okian/playcall/internal/config"
	"github.com/okian/playcall/internal/domain/enrich"
	"github.com/okian/playcall/pkg/logger"
)

// OpenLoader opens the raw table loader selected by cfg.
func OpenLoader(ctx context.Context, cfg *config.Config) (source.Loader, error) {
	return source.Open(ctx, source.Settings{
		Kind:      cfg.Source,
		DataDir:   cfg.DataDir,
		TeamsFile: cfg.TeamsFile,
		GamesFile: cfg.GamesFile,
		PlaysFile: cfg.PlaysFile,
		DSN:       cfg.DatabaseDSN,
	})
}

// OpenCache connects to Redis, behind a circuit breaker, when cfg names one
// and falls back to an in-process cache otherwise.
func OpenCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(), nil
	}
	r, err := cache.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return cache.NewBreaker(r, logger.Get().Named("cache")), nil
}

// FromConfig builds a Service and the loader behind it. The returned close
// function releases the loader's connection, if any.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, func() error, error) {
	policy, err := enrich.ParsePolicy(cfg.MalformedPolicy)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	loader, err := OpenLoader(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeLoader := func() error {
		if c, ok := loader.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}

	c, err := OpenCache(ctx, cfg)
	if err != nil {
		log.Warn(ctx, "redis unavailable; using in-process cache", logger.Error(err))
		c = cache.NewMemory()
	}

	svc := New(
		WithLogger(log),
		WithLoader(loader),
		WithCache(c),
		WithPolicy(policy),
		WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		WithRefreshInterval(time.Duration(cfg.RefreshIntervalSeconds)*time.Second),
		WithKeyPlayLimit(cfg.KeyPlayLimit),
		WithWarmWorkers(cfg.WarmWorkers),
	)
	return svc, closeLoader, nil
}
