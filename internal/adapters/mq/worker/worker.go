// Package worker computes queued cache warm-up jobs in the background.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/playcall/internal/adapters/mq/queue"
	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/types"
	"github.com/okian/playcall/pkg/logger"
	"github.com/okian/playcall/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Summarizer computes, and caches, the summary of a scenario.
type Summarizer interface {
	Summary(ctx context.Context, c filter.Criteria, limit int) (types.Summary, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// InMemoryWorker takes jobs off a queue and runs them through a Summarizer.
type InMemoryWorker struct {
	queue      Queue
	summarizer Summarizer
	name       string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, s Summarizer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      q,
		summarizer: s,
		name:       "worker",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes jobs until ctx is cancelled, Shutdown is called or the
// queue is drained after Close.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Warn(ctx, "warm-up job failed", logger.Int("team", j.Team), logger.Error(err))
			}
		}
	}
}

// Shutdown signals the worker to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) error {
	start := time.Now()
	sum, err := w.summarizer.Summary(ctx, j.Criteria, j.Limit)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordWarmJob(metrics.WarmFailed, elapsed)
		return fmt.Errorf("summarize team %d: %w", j.Team, err)
	}
	metrics.RecordWarmJob(metrics.WarmDone, elapsed)
	w.logger.Debug(ctx, "warmed summary",
		logger.Int("team", j.Team),
		logger.Int("matched", sum.Matched),
		logger.Bool("cached", sum.Cached),
	)
	return nil
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one uses
// one worker per CPU.
func NewPool(workerCount int, q Queue, s Summarizer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("warm-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, s, WithName("warm-"+strconv.Itoa(i)))
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWarmWorkers(len(p.workers))
}

// Shutdown closes the queue, if it can be closed, and waits for every worker.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	metrics.UpdateWarmWorkers(0)
	return firstErr
}
