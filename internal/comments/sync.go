package comments

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/github"
)

// Syncer posts a finished review back to the originating pull request. The
// whole stage is best-effort: it runs after the job has committed its result,
// and every failure here is logged without unwinding the completed job.
type Syncer struct {
	enabled   bool
	maxInline int
	client    github.Client
	logger    *slog.Logger
}

// NewSyncer builds the sync stage. A nil client with enabled=true is a wiring
// mistake; Sync guards against it anyway.
func NewSyncer(enabled bool, maxInline int, client github.Client, logger *slog.Logger) *Syncer {
	return &Syncer{
		enabled:   enabled,
		maxInline: maxInline,
		client:    client,
		logger:    logger,
	}
}

// Sync pushes the review to GitHub: first as an inline-annotated pull request
// review, then — when that fails or nothing could be anchored inline — as a
// single aggregate issue comment rendered from the full finding list.
func (s *Syncer) Sync(ctx context.Context, job *core.ReviewJob, summary string, findings []core.Finding, run *core.PipelineRun) {
	if !s.enabled || s.client == nil {
		return
	}
	if job.Source != core.SourceGitHub {
		return
	}

	if job.Repo == "" || job.PRNumber == "" {
		s.logger.Debug("skipping GitHub sync due to missing repo/pr metadata", "job_id", job.ID)
		return
	}
	owner, repo, ok := strings.Cut(job.Repo, "/")
	if !ok || owner == "" || repo == "" {
		s.logger.Warn("skipping GitHub sync: malformed repo identifier", "repo", job.Repo)
		return
	}
	prNumber, err := strconv.Atoi(job.PRNumber)
	if err != nil {
		s.logger.Warn("skipping GitHub sync: invalid PR number", "pr_number", job.PRNumber)
		return
	}

	inline, remainder := BuildInlineComments(findings, job.DiffSnapshot, s.maxInline, s.logger)

	summaryBody := BuildSummaryBody(summary, remainder, s.listLimit(len(remainder)), run, len(inline), len(findings))

	if len(inline) > 0 {
		err := s.client.CreateReview(ctx, owner, repo, prNumber, summaryBody, inline)
		if err == nil {
			s.logger.Info("submitted inline review to GitHub",
				"repo", job.Repo,
				"pr", prNumber,
				"inline_comments", len(inline),
			)
			return
		}
		s.logger.Warn("GitHub inline review failed, falling back to issue comment",
			"repo", job.Repo,
			"pr", prNumber,
			"error", err,
		)
	}

	// Fallback covers the full finding list, not just the remainder, since
	// nothing was posted inline.
	fallbackBody := BuildSummaryBody(summary, findings, s.listLimit(len(findings)), run, 0, len(findings))
	if err := s.client.CreateComment(ctx, owner, repo, prNumber, fallbackBody); err != nil {
		s.logger.Warn("GitHub comment sync failed",
			"repo", job.Repo,
			"pr", prNumber,
			"error", err,
		)
		return
	}
	s.logger.Info("synced review summary comment to GitHub", "repo", job.Repo, "pr", prNumber)
}

func (s *Syncer) listLimit(fallback int) int {
	if s.maxInline > 0 {
		return s.maxInline
	}
	return fallback
}
