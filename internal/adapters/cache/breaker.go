package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/okian/playcall/pkg/logger"
)

const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

// Breaker guards a remote Cache with a circuit breaker. While the circuit is
// open every call fails fast with ErrUnavailable, so a dead Redis costs a
// cache miss instead of a network timeout per request.
type Breaker struct {
	next Cache
	cb   *gobreaker.CircuitBreaker
}

// BreakerOption configures a Breaker.
type BreakerOption func(*gobreaker.Settings)

// WithTripAfter opens the circuit after n consecutive failures.
func WithTripAfter(n uint32) BreakerOption {
	return func(s *gobreaker.Settings) {
		if n > 0 {
			s.ReadyToTrip = func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= n }
		}
	}
}

// WithOpenTimeout sets how long the circuit stays open before a probe.
func WithOpenTimeout(d time.Duration) BreakerOption {
	return func(s *gobreaker.Settings) {
		if d > 0 {
			s.Timeout = d
		}
	}
}

// NewBreaker wraps next. State changes are logged on log.
func NewBreaker(next Cache, log logger.Logger, opts ...BreakerOption) *Breaker {
	settings := gobreaker.Settings{
		Name:        "result-cache",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= breakerFailures
		},
		// A miss is a healthy answer.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn(context.Background(), "cache circuit state changed",
					logger.String("breaker", name),
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
			}
		},
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Get reads through the breaker.
func (b *Breaker) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Get(ctx, key)
	})
	if err != nil {
		return nil, b.wrap(err)
	}
	return v.([]byte), nil
}

// Set writes through the breaker.
func (b *Breaker) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Set(ctx, key, value, ttl)
	})
	return b.wrap(err)
}

// Close closes the wrapped cache.
func (b *Breaker) Close() error { return b.next.Close() }

// State returns the circuit state name: closed, half-open or open.
func (b *Breaker) State() string { return b.cb.State().String() }

func (b *Breaker) wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
