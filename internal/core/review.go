// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"time"
)

// Source identifies where a review request originated.
type Source string

const (
	SourceManual Source = "manual"
	SourceGitHub Source = "github"
)

// Status is the lifecycle state of a review job. Jobs start pending, move to
// running when a worker picks them up, and end in completed or failed.
// Terminal states are never left automatically; re-running a job id overwrites
// its prior result instead of creating a new state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is a terminal job status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ReviewJob is one review request as stored in the database. For manual
// submissions DiffSnapshot is set at creation; for GitHub-sourced jobs it may
// be empty until the worker fetches the PR diff. PRNumber is kept as a string
// and parsed where it is consumed, matching the ingestion payloads.
type ReviewJob struct {
	ID           string    `db:"id"`
	Source       Source    `db:"source"`
	Status       Status    `db:"status"`
	DiffSnapshot string    `db:"diff_snapshot"`
	Repo         string    `db:"repo"`
	PRNumber     string    `db:"pr_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ReviewResult holds the outcome of one processed job. RawResponse is the
// serialized ResultPayload. At most one result row exists per job id; a
// re-run overwrites it.
type ReviewResult struct {
	ID          string    `db:"id"`
	JobID       string    `db:"review_job_id"`
	Summary     string    `db:"summary"`
	RawResponse string    `db:"raw_response"`
	CreatedAt   time.Time `db:"created_at"`
}
