package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/go-github/v73/github"

	"github.com/luxmikant/ryzl/internal/config"
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/storage"
)

// handledPRActions are the pull request actions that trigger a review.
var handledPRActions = map[string]struct{}{
	"opened":           {},
	"synchronize":      {},
	"ready_for_review": {},
}

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.Config
	store      storage.Store
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(cfg *config.Config, store storage.Store, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle validates and processes GitHub webhook requests. Only pull request
// events with a handled action create review jobs; everything else is
// acknowledged and ignored.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.cfg.GitHubWebhookSecret == "" {
		http.Error(w, "GitHub webhook secret is not configured", http.StatusServiceUnavailable)
		return
	}

	payload, err := github.ValidatePayload(r, []byte(h.cfg.GitHubWebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	switch e := event.(type) {
	case *github.PullRequestEvent:
		h.handlePullRequest(w, r, e)
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", github.WebHookType(r))
		_, _ = fmt.Fprint(w, "Event type not handled")
	}
}

func (h *WebhookHandler) handlePullRequest(w http.ResponseWriter, r *http.Request, event *github.PullRequestEvent) {
	action := event.GetAction()
	if _, handled := handledPRActions[action]; !handled {
		h.logger.Debug("ignoring pull request action", "action", action)
		_, _ = fmt.Fprintf(w, "Action %s not handled", action)
		return
	}

	repo := event.GetRepo().GetFullName()
	prNumber := event.GetPullRequest().GetNumber()
	if repo == "" || prNumber <= 0 {
		http.Error(w, "Missing repository or pull request number", http.StatusBadRequest)
		return
	}

	// The diff is fetched lazily by the worker; the webhook only records
	// where to find it.
	job := &core.ReviewJob{
		Source:   core.SourceGitHub,
		Status:   core.StatusPending,
		Repo:     repo,
		PRNumber: strconv.Itoa(prNumber),
	}

	if err := h.store.CreateJob(r.Context(), job); err != nil {
		h.logger.Error("failed to create review job from webhook", "repo", repo, "pr", prNumber, "error", err)
		http.Error(w, "Failed to create review job", http.StatusInternalServerError)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), job.ID); err != nil {
		h.logger.Error("failed to dispatch review job", "job_id", job.ID, "error", err)
		http.Error(w, "Failed to start review job", http.StatusInternalServerError)
		return
	}

	h.logger.Info("review job dispatched from webhook", "job_id", job.ID, "repo", repo, "pr", prNumber)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Review job accepted")
}
