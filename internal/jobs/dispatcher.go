// Package jobs contains the background review job, its lifecycle state
// machine, and the worker-pool dispatcher that executes it.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/luxmikant/ryzl/internal/core"
)

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines that process queued review job ids.
type dispatcher struct {
	reviewJob  core.Job       // Job implementation executed by each worker.
	jobQueue   chan string    // Queue of review job ids awaiting a worker.
	maxWorkers int            // Number of concurrent workers.
	wg         sync.WaitGroup // Tracks active workers for graceful shutdown.
	logger     *slog.Logger
}

// Dispatcher extends core.JobDispatcher with graceful shutdown.
type Dispatcher interface {
	core.JobDispatcher
	Stop()
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(reviewJob core.Job, maxWorkers int, logger *slog.Logger) Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		reviewJob:  reviewJob,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan string, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

// startWorkers launches maxWorkers goroutines to process jobs from the queue.
func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes job ids from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting review worker", "id", workerID)

	for jobID := range d.jobQueue {
		d.processJob(workerID, jobID)
	}

	d.logger.Info("shutting down review worker", "id", workerID)
}

// processJob runs one review job and logs its outcome. A failed job has
// already committed its failed status; the error here is for operational
// visibility only.
func (d *dispatcher) processJob(workerID int, jobID string) {
	d.logger.Info("worker processing job", "worker_id", workerID, "job_id", jobID)

	if err := d.reviewJob.Run(context.Background(), jobID); err != nil {
		d.logger.Error("review job failed", "job_id", jobID, "error", err)
	}
}

// Dispatch queues a review job id for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, jobID string) error {
	d.logger.Info("queuing review job", "job_id", jobID)

	select {
	case d.jobQueue <- jobID:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new review job")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	close(d.jobQueue)
	d.wg.Wait()
	d.logger.Info("all review jobs have finished")
}
