// Package worker runs periodic maintenance jobs in the background.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/gymsup/internal/telemetry"
)

// Job is a unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// PollInterval is how often every job is run
	PollInterval time.Duration

	// MaxConcurrency is the maximum number of jobs to process concurrently
	MaxConcurrency int

	// JobTimeout bounds a single job run
	JobTimeout time.Duration
}

// Worker runs a fixed set of jobs on a ticker.
type Worker struct {
	config Config
	jobs   []Job
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewWorker creates a new background job worker
func NewWorker(config Config, logger *slog.Logger, jobs ...Job) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = 10 * time.Minute
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 2
	}
	if config.JobTimeout == 0 {
		config.JobTimeout = time.Minute
	}

	return &Worker{
		config: config,
		jobs:   jobs,
		logger: logger,
	}
}

// Start runs jobs until the context is cancelled, then waits for in-flight
// jobs to finish.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"jobs", len(w.jobs),
		"poll_interval", w.config.PollInterval,
		"max_concurrency", w.config.MaxConcurrency,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.config.MaxConcurrency)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			w.wg.Wait()
			return ctx.Err()

		case <-ticker.C:
			for _, job := range w.jobs {
				select {
				case sem <- struct{}{}:
					w.wg.Add(1)
					go func(job Job) {
						defer w.wg.Done()
						defer func() { <-sem }()
						w.process(ctx, job)
					}(job)
				default:
					w.logger.Debug("worker at max concurrency, skipping job", "job", job.Name())
				}
			}
		}
	}
}

// RunOnce runs every job sequentially and returns the first error.
func (w *Worker) RunOnce(ctx context.Context) error {
	for _, job := range w.jobs {
		if err := w.process(ctx, job); err != nil {
			return fmt.Errorf("%s: %w", job.Name(), err)
		}
	}
	return nil
}

func (w *Worker) process(ctx context.Context, job Job) error {
	jobCtx, cancel := context.WithTimeout(ctx, w.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(jobCtx); err != nil {
		w.logger.Error("job failed",
			"worker_id", w.config.WorkerID,
			"job", job.Name(),
			"error", err,
		)
		telemetry.CaptureError(err, map[string]interface{}{
			"worker_id": w.config.WorkerID,
			"job":       job.Name(),
		})
		return err
	}

	w.logger.Debug("job completed",
		"worker_id", w.config.WorkerID,
		"job", job.Name(),
		"duration", time.Since(start),
	)
	return nil
}
