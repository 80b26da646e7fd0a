package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/luxmikant/ryzl/internal/comments"
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/github"
	"github.com/luxmikant/ryzl/internal/pipeline"
	"github.com/luxmikant/ryzl/internal/storage"
)

// ReviewJob advances one review through its lifecycle: pending → running →
// completed or failed. Each state transition commits independently, so a
// crashed worker leaves the job in the last committed state and a queue
// redelivery can safely retry it (results are upserted, never duplicated).
type ReviewJob struct {
	store    storage.Store
	strategy pipeline.Strategy
	ghClient github.Client
	syncer   *comments.Syncer
	logger   *slog.Logger
}

// NewReviewJob creates the review job runner. ghClient may be nil when no
// hosting-API credentials are configured; GitHub-sourced jobs then fail at
// the diff-fetch step.
func NewReviewJob(store storage.Store, strategy pipeline.Strategy, ghClient github.Client, syncer *comments.Syncer, logger *slog.Logger) core.Job {
	if store == nil {
		panic("store cannot be nil")
	}
	if strategy == nil {
		panic("pipeline strategy cannot be nil")
	}
	if syncer == nil {
		panic("syncer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{
		store:    store,
		strategy: strategy,
		ghClient: ghClient,
		syncer:   syncer,
		logger:   logger,
	}
}

// Run executes the full lifecycle for one job id. A job that no longer
// exists is not an error: it is skipped silently. Any failure after the job
// reached running both commits the failed status and propagates the original
// error for operational logging.
func (j *ReviewJob) Run(ctx context.Context, jobID string) error {
	job, err := j.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			j.logger.Warn("review job no longer exists", "job_id", jobID)
			return nil
		}
		return fmt.Errorf("failed to load review job %s: %w", jobID, err)
	}

	if job.Source == core.SourceGitHub && job.DiffSnapshot == "" {
		if err := j.fetchDiff(ctx, job); err != nil {
			return j.failJob(ctx, job.ID, err)
		}
	}

	if err := j.store.SetJobStatus(ctx, job.ID, core.StatusRunning); err != nil {
		return fmt.Errorf("failed to mark job %s running: %w", job.ID, err)
	}

	summary, findings, run, err := j.strategy.Run(ctx, job.DiffSnapshot)
	if err != nil {
		return j.failJob(ctx, job.ID, fmt.Errorf("pipeline run failed: %w", err))
	}

	payload := core.ResultPayload{Comments: findings, Metadata: run}
	if payload.Comments == nil {
		payload.Comments = []core.Finding{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return j.failJob(ctx, job.ID, fmt.Errorf("failed to serialize result payload: %w", err))
	}

	if err := j.store.UpsertResult(ctx, job.ID, summary, string(raw)); err != nil {
		return j.failJob(ctx, job.ID, fmt.Errorf("failed to persist result: %w", err))
	}
	if err := j.store.SetJobStatus(ctx, job.ID, core.StatusCompleted); err != nil {
		return j.failJob(ctx, job.ID, fmt.Errorf("failed to mark job completed: %w", err))
	}

	j.logger.Info("review job completed",
		"job_id", job.ID,
		"source", job.Source,
		"findings", len(findings),
	)

	// Best-effort sync: the job is already completed, nothing below can fail
	// it.
	j.syncer.Sync(ctx, job, summary, findings, &run)
	return nil
}

// fetchDiff resolves the diff snapshot for a GitHub-sourced job before the
// pipeline runs. Missing repo/PR metadata, an unparsable PR number, and a
// fetch failure are all fatal to the job; no pipeline run is attempted.
func (j *ReviewJob) fetchDiff(ctx context.Context, job *core.ReviewJob) error {
	if job.Repo == "" || job.PRNumber == "" {
		return fmt.Errorf("github job %s is missing repo or PR number", job.ID)
	}
	owner, repo, ok := strings.Cut(job.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return fmt.Errorf("github job %s has malformed repo identifier %q", job.ID, job.Repo)
	}
	prNumber, err := strconv.Atoi(job.PRNumber)
	if err != nil {
		return fmt.Errorf("github job %s has invalid PR number %q", job.ID, job.PRNumber)
	}
	if j.ghClient == nil {
		return fmt.Errorf("github job %s cannot fetch diff: no hosting-API client configured", job.ID)
	}

	diffText, err := j.ghClient.GetPullRequestDiff(ctx, owner, repo, prNumber)
	if err != nil {
		return fmt.Errorf("failed to fetch diff for %s#%d: %w", job.Repo, prNumber, err)
	}

	if err := j.store.SetJobDiff(ctx, job.ID, diffText); err != nil {
		return fmt.Errorf("failed to persist fetched diff: %w", err)
	}
	job.DiffSnapshot = diffText
	return nil
}

// failJob commits the failed status and returns the original error. A
// failure to commit the status is logged but never masks the cause.
func (j *ReviewJob) failJob(ctx context.Context, jobID string, cause error) error {
	if err := j.store.SetJobStatus(ctx, jobID, core.StatusFailed); err != nil {
		j.logger.Error("failed to mark job failed", "job_id", jobID, "error", err)
	}
	return cause
}
