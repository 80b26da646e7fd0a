package core

import (
	"context"
)

// JobDispatcher defines the contract for a system that can accept and queue
// background jobs for asynchronous processing. This interface decouples the
// ingestion layer (API handler or webhook handler) from the job execution
// mechanism.
type JobDispatcher interface {
	// Dispatch queues the job with the given id for processing. It returns an
	// error if the job cannot be queued, for example when the queue is full,
	// providing a mechanism for backpressure.
	Dispatch(ctx context.Context, jobID string) error
}

// Job represents a single, executable unit of work processed by the
// application's job dispatcher. Each job is addressed by the id of a
// persisted ReviewJob row.
type Job interface {
	// Run executes the job's logic for the given review job id. It returns an
	// error if the job fails to complete successfully.
	Run(ctx context.Context, jobID string) error
}
