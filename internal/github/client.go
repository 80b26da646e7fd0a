// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// RemoteAPIError reports a non-2xx response from the hosting API.
type RemoteAPIError struct {
	StatusCode int
	Message    string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("github API request failed (status=%d): %s", e.StatusCode, e.Message)
}

// DraftReviewComment is one inline comment submitted as part of a pull
// request review. Line numbers are on the side given by Side ("RIGHT" for the
// post-change file). StartLine/StartSide are set only for multi-line
// comments.
type DraftReviewComment struct {
	Path      string
	Line      int
	Side      string
	Body      string
	StartLine int
	StartSide string
}

// Client defines the hosting-API operations the review service needs:
// fetching a PR diff, submitting an inline-annotated review, and posting a
// plain issue comment.
type Client interface {
	GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error)
	CreateReview(ctx context.Context, owner, repo string, number int, body string, comments []DraftReviewComment) error
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient wraps the official go-github client to provide a focused,
// testable interface for the application's GitHub operations.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a GitHub client authenticated with a personal access
// token. This is the path used when no GitHub App credentials are configured.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetPullRequestDiff retrieves the unified diff of a pull request.
func (g *gitHubClient) GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, resp, err := g.client.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{
		Type: github.Diff,
	})
	if err != nil {
		g.logger.Error("failed to get pull request diff", "owner", owner, "repo", repo, "pr", number, "error", err)
		return "", wrapAPIError(resp, err)
	}
	return diff, nil
}

// CreateReview submits a pull request review with a summary body and
// line-anchored comments.
func (g *gitHubClient) CreateReview(ctx context.Context, owner, repo string, number int, body string, comments []DraftReviewComment) error {
	ghComments := make([]*github.DraftReviewComment, 0, len(comments))
	for _, c := range comments {
		comment := &github.DraftReviewComment{
			Path: github.Ptr(c.Path),
			Line: github.Ptr(c.Line),
			Side: github.Ptr(c.Side),
			Body: github.Ptr(c.Body),
		}
		if c.StartLine > 0 {
			comment.StartLine = github.Ptr(c.StartLine)
			comment.StartSide = github.Ptr(c.StartSide)
		}
		ghComments = append(ghComments, comment)
	}

	reviewRequest := &github.PullRequestReviewRequest{
		Body:     github.Ptr(body),
		Event:    github.Ptr("COMMENT"),
		Comments: ghComments,
	}

	_, resp, err := g.client.PullRequests.CreateReview(ctx, owner, repo, number, reviewRequest)
	if err != nil {
		g.logger.Error("failed to create pull request review", "owner", owner, "repo", repo, "pr", number, "error", err)
		return wrapAPIError(resp, err)
	}
	return nil
}

// CreateComment posts a plain comment on the pull request's issue thread.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, resp, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return wrapAPIError(resp, err)
	}
	return nil
}

// wrapAPIError converts a failed go-github call into a RemoteAPIError so
// callers can branch on the status code without importing go-github.
func wrapAPIError(resp *github.Response, err error) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &RemoteAPIError{StatusCode: status, Message: err.Error()}
}
