// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/playcall/internal/adapters/cache"
	"github.com/okian/playcall/internal/adapters/mq/queue"
	"github.com/okian/playcall/internal/adapters/mq/worker"
	"github.com/okian/playcall/internal/adapters/repository"
	"github.com/okian/playcall/internal/adapters/source"
	"github.com/okian/playcall/internal/domain/enrich"
	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/kpi"
	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/teams"
	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/internal/pipeline"
	"github.com/okian/playcall/pkg/logger"
	"github.com/okian/playcall/pkg/metrics"
)

const (
	defaultCacheTTL   = 5 * time.Minute
	summaryKind       = "summary"
	warmQueueCapacity = 4096
	warmStopTimeout   = 10 * time.Second
)

// Service serves situational play queries over the latest play table.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader source.Loader
	store  *repository.SnapshotStore
	cache  cache.Cache

	// Configuration
	policy          enrich.Policy
	cacheTTL        time.Duration
	refreshInterval time.Duration
	keyPlayLimit    int
	warmWorkers     int

	// refreshMu serializes reloads so concurrent callers never build twice.
	refreshMu   sync.Mutex
	lastRefresh time.Time
	lastErr     error
	refreshes   int
	rebuilds    int
	warmQueue   *queue.InMemoryQueue
	warmDropped int

	// State
	started bool
	cancel   context.CancelFunc
	done     chan struct{}
	warmPool *worker.Pool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewSnapshotStore(),
		policy:       enrich.PolicyFail,
		cacheTTL:     defaultCacheTTL,
		keyPlayLimit: kpi.DefaultKeyPlayLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewMemory()
	}
	return s
}

// Start builds the first play table and, when configured, starts the
// background refresher. It fails if the first build fails.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.loader == nil {
		return ErrNoLoader
	}

	s.logger.Info(ctx, "starting playcall service...")
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	// Warm-up workers must be running before the first rebuild queues jobs
	if s.warmWorkers > 0 {
		q := queue.NewInMemoryQueue(queue.WithCapacity(warmQueueCapacity))
		s.refreshMu.Lock()
		s.warmQueue = q
		s.refreshMu.Unlock()
		s.warmPool = worker.NewPool(s.warmWorkers, q, s)
		s.warmPool.Start(runCtx)
	}

	res, err := s.refresh(ctx)
	if err != nil {
		s.stopBackground(ctx)
		return fmt.Errorf("initial build: %w", err)
	}

	if s.refreshInterval > 0 {
		s.done = make(chan struct{})
		go s.runRefresher(runCtx, s.done)
	}

	s.started = true
	s.logger.Info(ctx, "playcall service started",
		logger.String("fingerprint", res.Fingerprint),
		logger.Int("plays", res.Plays),
		logger.Any("refreshInterval", s.refreshInterval),
		logger.Int("warmWorkers", s.warmWorkers),
	)
	return nil
}

// Stop gracefully shuts down the background refresher and releases the cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping playcall service...")

	s.stopBackground(context.Background())
	if err := s.cache.Close(); err != nil {
		s.logger.Warn(context.Background(), "cache close failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "playcall service stopped")
}

// stopBackground stops the refresher and the warm-up pool. Callers hold s.mu.
func (s *Service) stopBackground(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.done != nil {
		<-s.done
		s.done = nil
	}
	if s.warmPool != nil {
		stopCtx, cancel := context.WithTimeout(ctx, warmStopTimeout)
		defer cancel()
		if err := s.warmPool.Shutdown(stopCtx); err != nil {
			s.log().Warn(ctx, "warm-up pool shutdown failed", logger.Error(err))
		}
		s.warmPool = nil
	}
}

func (s *Service) runRefresher(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error(ctx, "background refresh failed", logger.Error(err))
			}
		}
	}
}

// Refresh reloads the raw tables and republishes the play table if they
// changed. The previous table stays in place when the reload fails.
func (s *Service) Refresh(ctx context.Context) (types.RefreshResult, error) {
	if s.loader == nil {
		return types.RefreshResult{}, ErrNoLoader
	}
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (types.RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.refreshes++
	s.lastRefresh = time.Now()
	out, err := s.rebuild(ctx)
	s.lastErr = err
	return out, err
}

func (s *Service) rebuild(ctx context.Context) (types.RefreshResult, error) {
	ds, err := source.LoadAll(ctx, s.loader)
	if err != nil {
		metrics.RecordPipelineError("load")
		return types.RefreshResult{}, err
	}

	fp := pipeline.Fingerprint(ds)
	if cur, err := s.store.Current(ctx); err == nil && cur.Fingerprint() == fp {
		metrics.RecordSnapshot(false, time.Now().Unix())
		s.log().Debug(ctx, "raw tables unchanged", logger.String("fingerprint", types.FormatFingerprint(fp)))
		return types.RefreshResult{
			Fingerprint: types.FormatFingerprint(fp),
			Version:     cur.Version,
			Plays:       len(cur.Result.Plays),
		}, nil
	}

	res, err := pipeline.FromDataset(ctx, ds, pipeline.WithPolicy(s.policy), pipeline.WithLogger(s.log()))
	if err != nil {
		return types.RefreshResult{}, err
	}
	changed, err := s.store.Publish(ctx, res)
	if err != nil {
		return types.RefreshResult{}, err
	}
	if changed {
		s.rebuilds++
		s.warm(ctx, res)
	}
	snap, err := s.store.Current(ctx)
	if err != nil {
		return types.RefreshResult{}, err
	}
	return types.RefreshResult{
		Changed:     changed,
		Fingerprint: types.FormatFingerprint(res.Fingerprint),
		Version:     snap.Version,
		Plays:       len(res.Plays),
	}, nil
}

// warm queues the dashboard default summary of every team. Callers hold
// s.refreshMu.
func (s *Service) warm(ctx context.Context, res *pipeline.Result) {
	if s.warmQueue == nil {
		return
	}
	var dropped int
	for _, id := range res.Teams.IDs() {
		j := queue.Job{
			Team:        id,
			Criteria:    filter.DashboardDefaults(id),
			Limit:       s.keyPlayLimit,
			Fingerprint: res.Fingerprint,
		}
		if err := s.warmQueue.Enqueue(ctx, j); err != nil {
			metrics.RecordWarmJob(metrics.WarmDropped, 0)
			dropped++
		}
	}
	if dropped > 0 {
		s.warmDropped += dropped
		s.log().Warn(ctx, "warm-up jobs dropped", logger.Int("dropped", dropped))
	}
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// Snapshot returns the current play table.
func (s *Service) Snapshot(ctx context.Context) (repository.Snapshot, error) {
	snap, err := s.store.Current(ctx)
	if errors.Is(err, repository.ErrNoSnapshot) {
		return repository.Snapshot{}, ErrNotReady
	}
	return snap, err
}

// Teams lists the reference teams in file order.
func (s *Service) Teams(ctx context.Context) ([]model.Team, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Result.Teams.All(), nil
}

// Team returns the team with id.
func (s *Service) Team(ctx context.Context, id int) (model.Team, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return model.Team{}, err
	}
	t, err := snap.Result.Teams.Lookup(id)
	if errors.Is(err, teams.ErrNotFound) {
		return model.Team{}, fmt.Errorf("%w: %d", ErrUnknownTeam, id)
	}
	return t, err
}

// TeamByName returns the team whose display name is name.
func (s *Service) TeamByName(ctx context.Context, name string) (model.Team, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return model.Team{}, err
	}
	t, err := snap.Result.Teams.ByDisplayName(name)
	if errors.Is(err, teams.ErrNotFound) {
		return model.Team{}, fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	return t, err
}

// Plays returns the plays of the current table matching c.
func (s *Service) Plays(ctx context.Context, c filter.Criteria) ([]model.EnrichedPlay, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := filter.Apply(snap.Result.Plays, c)
	metrics.RecordQuery("plays", len(rows))
	return rows, nil
}

// KeyPlayLimit is the number of key plays reported when callers do not choose.
func (s *Service) KeyPlayLimit() int { return s.keyPlayLimit }

// Summary reports KPIs, the play breakdown and up to limit key plays for the
// plays matching c. Results are cached per snapshot fingerprint.
func (s *Service) Summary(ctx context.Context, c filter.Criteria, limit int) (types.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return types.Summary{}, err
	}
	key := cache.Key(summaryKind, snap.Fingerprint(), c, limit)

	if sum, ok := s.cached(ctx, key); ok {
		metrics.RecordQuery(summaryKind, sum.Matched)
		return sum, nil
	}

	rows := filter.Apply(snap.Result.Plays, c)
	sum := types.NewSummary(snap.Fingerprint(), rows, limit)
	metrics.RecordQuery(summaryKind, sum.Matched)

	if b, err := json.Marshal(sum); err == nil {
		if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
			metrics.RecordCacheError()
			s.log().Warn(ctx, "cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return sum, nil
}

func (s *Service) cached(ctx context.Context, key string) (types.Summary, bool) {
	b, err := s.cache.Get(ctx, key)
	switch {
	case errors.Is(err, cache.ErrMiss):
		metrics.RecordCacheMiss()
		return types.Summary{}, false
	case err != nil:
		metrics.RecordCacheError()
		s.log().Warn(ctx, "cache read failed", logger.String("key", key), logger.Error(err))
		return types.Summary{}, false
	}
	var sum types.Summary
	if err := json.Unmarshal(b, &sum); err != nil {
		metrics.RecordCacheError()
		return types.Summary{}, false
	}
	metrics.RecordCacheHit()
	sum.Cached = true
	return sum, true
}

// Options returns the selectable filter values.
func (s *Service) Options(_ context.Context) types.Options {
	return types.DashboardOptions()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	s.refreshMu.Lock()
	stats := map[string]interface{}{
		"started":         started,
		"policy":          string(s.policy),
		"refreshInterval": s.refreshInterval.String(),
		"refreshes":       s.refreshes,
		"rebuilds":        s.rebuilds,
		"warmWorkers":     s.warmWorkers,
		"warmDropped":     s.warmDropped,
	}
	if s.warmQueue != nil {
		stats["warmQueue"] = s.warmQueue.Len()
	}
	if !s.lastRefresh.IsZero() {
		stats["lastRefresh"] = s.lastRefresh.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		stats["lastError"] = s.lastErr.Error()
	}
	s.refreshMu.Unlock()

	if snap, err := s.store.Current(context.Background()); err == nil {
		rep := snap.Result.Report
		stats["fingerprint"] = types.FormatFingerprint(snap.Fingerprint())
		stats["version"] = snap.Version
		stats["publishedAt"] = snap.PublishedAt.UTC().Format(time.RFC3339)
		stats["teams"] = snap.Result.Teams.Len()
		stats["games"] = len(snap.Result.Outcomes)
		stats["plays"] = len(snap.Result.Plays)
		stats["report"] = rep
	}
	return stats
}
