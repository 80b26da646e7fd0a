package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/github"
)

type fakeGitHubClient struct {
	diff            string
	diffErr         error
	reviewErr       error
	commentErr      error
	reviewCalls     int
	commentCalls    int
	lastOwner       string
	lastRepo        string
	lastPR          int
	lastReviewBody  string
	lastComments    []github.DraftReviewComment
	lastCommentBody string
}

func (f *fakeGitHubClient) GetPullRequestDiff(_ context.Context, owner, repo string, number int) (string, error) {
	f.lastOwner, f.lastRepo, f.lastPR = owner, repo, number
	return f.diff, f.diffErr
}

func (f *fakeGitHubClient) CreateReview(_ context.Context, owner, repo string, number int, body string, comments []github.DraftReviewComment) error {
	f.reviewCalls++
	f.lastOwner, f.lastRepo, f.lastPR = owner, repo, number
	f.lastReviewBody = body
	f.lastComments = comments
	return f.reviewErr
}

func (f *fakeGitHubClient) CreateComment(_ context.Context, owner, repo string, number int, body string) error {
	f.commentCalls++
	f.lastOwner, f.lastRepo, f.lastPR = owner, repo, number
	f.lastCommentBody = body
	return f.commentErr
}

func githubJob() *core.ReviewJob {
	return &core.ReviewJob{
		ID:           "job-1",
		Source:       core.SourceGitHub,
		Status:       core.StatusCompleted,
		Repo:         "octo/widgets",
		PRNumber:     "42",
		DiffSnapshot: placerDiff,
	}
}

func anchorableFindings() []core.Finding {
	return []core.Finding{finding("app/service.py", 2, 2)}
}

func TestSyncSubmitsInlineReview(t *testing.T) {
	client := &fakeGitHubClient{}
	syncer := NewSyncer(true, 10, client, testLogger())

	syncer.Sync(context.Background(), githubJob(), "Summary.", anchorableFindings(), nil)

	require.Equal(t, 1, client.reviewCalls)
	assert.Equal(t, 0, client.commentCalls)
	assert.Equal(t, "octo", client.lastOwner)
	assert.Equal(t, "widgets", client.lastRepo)
	assert.Equal(t, 42, client.lastPR)
	require.Len(t, client.lastComments, 1)
	assert.Contains(t, client.lastReviewBody, "_Posted 1 inline comment(s)")
}

func TestSyncFallsBackToComment(t *testing.T) {
	client := &fakeGitHubClient{reviewErr: errors.New("422 unprocessable")}
	syncer := NewSyncer(true, 10, client, testLogger())

	findings := anchorableFindings()
	syncer.Sync(context.Background(), githubJob(), "Summary.", findings, nil)

	assert.Equal(t, 1, client.reviewCalls)
	require.Equal(t, 1, client.commentCalls)
	// The fallback body lists the full finding set with no inline note.
	assert.Contains(t, client.lastCommentBody, "**Potential insecure call**")
	assert.NotContains(t, client.lastCommentBody, "inline comment(s)")
}

func TestSyncNoAnchorableFindings(t *testing.T) {
	client := &fakeGitHubClient{}
	syncer := NewSyncer(true, 10, client, testLogger())

	findings := []core.Finding{finding("elsewhere.py", 500, 0)}
	syncer.Sync(context.Background(), githubJob(), "Summary.", findings, nil)

	assert.Equal(t, 0, client.reviewCalls)
	require.Equal(t, 1, client.commentCalls)
	assert.Contains(t, client.lastCommentBody, "**Potential insecure call**")
}

func TestSyncCommentFailureIsSwallowed(t *testing.T) {
	client := &fakeGitHubClient{reviewErr: errors.New("boom"), commentErr: errors.New("also boom")}
	syncer := NewSyncer(true, 10, client, testLogger())

	assert.NotPanics(t, func() {
		syncer.Sync(context.Background(), githubJob(), "Summary.", anchorableFindings(), nil)
	})
}

func TestSyncSkips(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Syncer, *core.ReviewJob)
	}{
		{"disabled", func(s *Syncer, _ *core.ReviewJob) { s.enabled = false }},
		{"nil client", func(s *Syncer, _ *core.ReviewJob) { s.client = nil }},
		{"manual source", func(_ *Syncer, j *core.ReviewJob) { j.Source = core.SourceManual }},
		{"missing repo", func(_ *Syncer, j *core.ReviewJob) { j.Repo = "" }},
		{"missing pr number", func(_ *Syncer, j *core.ReviewJob) { j.PRNumber = "" }},
		{"malformed repo", func(_ *Syncer, j *core.ReviewJob) { j.Repo = "no-slash" }},
		{"non-numeric pr", func(_ *Syncer, j *core.ReviewJob) { j.PRNumber = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeGitHubClient{}
			syncer := NewSyncer(true, 10, client, testLogger())
			job := githubJob()
			tt.mutate(syncer, job)

			syncer.Sync(context.Background(), job, "Summary.", anchorableFindings(), nil)

			assert.Equal(t, 0, client.reviewCalls)
			assert.Equal(t, 0, client.commentCalls)
		})
	}
}
