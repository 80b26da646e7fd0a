// Package storage implements persistence for review jobs and their results.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/luxmikant/ryzl/internal/core"
)

var (
	// ErrJobNotFound is returned when no review job exists for an id.
	ErrJobNotFound = errors.New("review job not found")
	// ErrResultNotFound is returned when a job has no stored result yet.
	ErrResultNotFound = errors.New("review result not found")
)

// Store defines the interface for all database operations. Each call commits
// independently: there is no long-lived transaction spanning a whole job, so
// a crash leaves the job in the last committed state.
type Store interface {
	CreateJob(ctx context.Context, job *core.ReviewJob) error
	GetJob(ctx context.Context, id string) (*core.ReviewJob, error)
	SetJobStatus(ctx context.Context, id string, status core.Status) error
	SetJobDiff(ctx context.Context, id, diff string) error
	UpsertResult(ctx context.Context, jobID, summary, rawResponse string) error
	GetResult(ctx context.Context, jobID string) (*core.ReviewResult, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store backed by postgres.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// CreateJob inserts a new review job row. The job's ID and timestamps are
// populated here when unset.
func (s *postgresStore) CreateJob(ctx context.Context, job *core.ReviewJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = core.StatusPending
	}

	query := `INSERT INTO review_jobs (id, source, status, diff_snapshot, repo, pr_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		job.ID, job.Source, job.Status, job.DiffSnapshot, job.Repo, job.PRNumber, job.CreatedAt, job.UpdatedAt)
	return err
}

// GetJob retrieves a review job by id.
func (s *postgresStore) GetJob(ctx context.Context, id string) (*core.ReviewJob, error) {
	query := `SELECT id, source, status, diff_snapshot, repo, pr_number, created_at, updated_at
		FROM review_jobs WHERE id = $1`

	var job core.ReviewJob
	if err := s.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// SetJobStatus updates a job's status and bumps its updated_at timestamp.
func (s *postgresStore) SetJobStatus(ctx context.Context, id string, status core.Status) error {
	query := `UPDATE review_jobs SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetJobDiff stores the lazily fetched diff snapshot on a GitHub-sourced job.
func (s *postgresStore) SetJobDiff(ctx context.Context, id, diff string) error {
	query := `UPDATE review_jobs SET diff_snapshot = $1, updated_at = $2 WHERE id = $3`
	res, err := s.db.ExecContext(ctx, query, diff, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpsertResult writes the single result row for a job, overwriting any prior
// result from an earlier run of the same job id.
func (s *postgresStore) UpsertResult(ctx context.Context, jobID, summary, rawResponse string) error {
	query := `INSERT INTO review_results (id, review_job_id, summary, raw_response, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (review_job_id)
		DO UPDATE SET summary = EXCLUDED.summary, raw_response = EXCLUDED.raw_response, created_at = EXCLUDED.created_at`
	_, err := s.db.ExecContext(ctx, query, uuid.NewString(), jobID, summary, rawResponse, time.Now().UTC())
	return err
}

// GetResult retrieves the stored result for a job id.
func (s *postgresStore) GetResult(ctx context.Context, jobID string) (*core.ReviewResult, error) {
	query := `SELECT id, review_job_id, summary, raw_response, created_at
		FROM review_results WHERE review_job_id = $1`

	var result core.ReviewResult
	if err := s.db.GetContext(ctx, &result, query, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}
