package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-kiosk-api/pkg/jobs"
)

// ProjectionCachePattern matches every cached projection.
const ProjectionCachePattern = "schedule:*"

const reloadJob = "catalog.reload"

// CatalogRefresher reloads the catalog in the background, on a timer and on
// demand. Overlapping triggers collapse into one reload; failures are
// retried and the previous snapshot keeps serving meanwhile.
type CatalogRefresher struct {
	catalog  *CatalogService
	cache    *CacheService
	interval time.Duration
	logger   *zap.Logger
	queue    *jobs.Queue
}

// NewCatalogRefresher constructs a refresher. A zero interval disables the
// timer; Trigger still works.
func NewCatalogRefresher(catalog *CatalogService, cache *CacheService, interval time.Duration, logger *zap.Logger) *CatalogRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &CatalogRefresher{catalog: catalog, cache: cache, interval: interval, logger: logger}
	r.queue = jobs.NewQueue("catalog", r.run, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
		Logger:     logger,
	})
	return r
}

// Start launches the worker and, when configured, the reload timer.
func (r *CatalogRefresher) Start(ctx context.Context) {
	r.queue.Start(ctx)
	if r.interval > 0 {
		go jobs.Every(ctx, r.queue, r.interval, reloadJob)
		r.logger.Info("periodic catalog reload enabled", zap.Duration("interval", r.interval))
	}
}

// Trigger schedules a reload. It returns jobs.ErrPending when one is
// already queued or running.
func (r *CatalogRefresher) Trigger() error {
	return r.queue.Enqueue(jobs.Job{Kind: reloadJob})
}

// Stop waits for the worker to exit.
func (r *CatalogRefresher) Stop() {
	r.queue.Stop()
}

func (r *CatalogRefresher) run(ctx context.Context, job jobs.Job) error {
	result, err := r.catalog.Reload(ctx)
	if err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, ProjectionCachePattern); err != nil {
		r.logger.Warn("projection cache not cleared after reload", zap.Error(err))
	}
	r.logger.Debug("background catalog reload done", zap.Uint64("version", result.Version), zap.Int("attempt", job.Attempt))
	return nil
}
