package service

import (
	"time"

	"github.com/okian/playcall/internal/adapters/cache"
	"github.com/okian/playcall/internal/adapters/source"
	"github.com/okian/playcall/internal/domain/enrich"
	"github.com/okian/playcall/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader sets where raw tables are read from.
func WithLoader(l source.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithCache sets the summary result cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithCacheTTL sets how long cached summaries live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithPolicy sets the malformed clock policy of every build.
func WithPolicy(p enrich.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithRefreshInterval enables periodic reloads. Zero disables them.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithKeyPlayLimit sets the default number of key plays per summary.
func WithKeyPlayLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.keyPlayLimit = n
		}
	}
}

// WithWarmWorkers enables cache warm-up with n workers. Zero disables it.
func WithWarmWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.warmWorkers = n
		}
	}
}
