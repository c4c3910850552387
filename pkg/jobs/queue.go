package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrPending is returned by Enqueue when a job of the same kind is already
// waiting or running.
var ErrPending = errors.New("job already pending")

// Job is one unit of background work. Jobs are coalesced by Kind.
type Job struct {
	Kind     string
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue runs jobs on a small worker pool and retries failures after a delay.
// At most one job per kind is in flight, so a burst of triggers collapses
// into a single run.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	pending map[string]struct{}
	started bool
}

// NewQueue builds a queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job, cfg.Workers*4),
		pending: make(map[string]struct{}),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop cancels workers and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Info("queue stopped")
}

// Enqueue schedules a job unless one of the same kind is pending.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return fmt.Errorf("queue %s not started", q.name)
	}
	if _, ok := q.pending[job.Kind]; ok {
		q.mu.Unlock()
		return ErrPending
	}
	q.pending[job.Kind] = struct{}{}
	ctx := q.ctx
	q.mu.Unlock()

	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	return q.push(ctx, job)
}

func (q *Queue) push(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		q.done(job.Kind)
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) done(kind string) {
	q.mu.Lock()
	delete(q.pending, kind)
	q.mu.Unlock()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			if err := q.handler(q.ctx, job); err != nil {
				q.retry(job, err)
				continue
			}
			q.done(job.Kind)
		}
	}
}

func (q *Queue) retry(job Job, err error) {
	job.Attempt++
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Error("job exceeded retries", zap.String("kind", job.Kind), zap.Int("attempt", job.Attempt), zap.Error(err))
		q.done(job.Kind)
		return
	}
	q.logger.Warn("job failed, retrying", zap.String("kind", job.Kind), zap.Int("attempt", job.Attempt), zap.Error(err))

	go func() {
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.done(job.Kind)
		case <-timer.C:
			if err := q.push(q.ctx, job); err != nil {
				q.logger.Error("failed to requeue job", zap.String("kind", job.Kind), zap.Error(err))
			}
		}
	}()
}

// Every enqueues a job of kind on each tick until ctx is done. Ticks that
// find the previous run still pending are skipped.
func Every(ctx context.Context, q *Queue, interval time.Duration, kind string) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := q.Enqueue(Job{Kind: kind}); err != nil && !errors.Is(err, ErrPending) {
				q.logger.Warn("periodic enqueue failed", zap.String("kind", kind), zap.Error(err))
			}
		}
	}
}
