// Package handler provides the HTTP handlers for the review API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/storage"
)

// ReviewHandler serves manual review submission and review retrieval.
type ReviewHandler struct {
	store      storage.Store
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewReviewHandler creates a review API handler.
func NewReviewHandler(store storage.Store, dispatcher core.JobDispatcher, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{store: store, dispatcher: dispatcher, logger: logger}
}

type submitRequest struct {
	Source   string `json:"source"`
	Diff     string `json:"diff"`
	Repo     string `json:"repo"`
	PRNumber *int   `json:"pr_number"`
}

type reviewResponse struct {
	ID        string            `json:"id"`
	Status    core.Status       `json:"status"`
	Summary   string            `json:"summary"`
	Comments  []core.Finding    `json:"comments"`
	Agents    []string          `json:"agents"`
	Metrics   *core.PipelineRun `json:"metrics,omitempty"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// Submit accepts a review request and queues it for asynchronous processing.
// Manual submissions must carry a diff; GitHub-sourced ones may rely on the
// worker fetching it later.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	source := core.Source(req.Source)
	if source != core.SourceManual && source != core.SourceGitHub {
		http.Error(w, "source must be \"manual\" or \"github\"", http.StatusBadRequest)
		return
	}
	if source == core.SourceManual && req.Diff == "" {
		http.Error(w, "diff is required for manual source", http.StatusBadRequest)
		return
	}

	job := &core.ReviewJob{
		Source:       source,
		Status:       core.StatusPending,
		DiffSnapshot: req.Diff,
		Repo:         req.Repo,
	}
	if req.PRNumber != nil {
		job.PRNumber = strconv.Itoa(*req.PRNumber)
	}

	if err := h.store.CreateJob(r.Context(), job); err != nil {
		h.logger.Error("failed to create review job", "error", err)
		http.Error(w, "failed to create review job", http.StatusInternalServerError)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), job.ID); err != nil {
		h.logger.Error("failed to dispatch review job", "job_id", job.ID, "error", err)
		http.Error(w, "failed to queue review job", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusCreated, jobResponse(job, nil))
}

// Get returns one review job together with its decoded result, when present.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.store.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			http.Error(w, "review job not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load review job", "job_id", id, "error", err)
		http.Error(w, "failed to load review job", http.StatusInternalServerError)
		return
	}

	result, err := h.store.GetResult(r.Context(), id)
	if err != nil && !errors.Is(err, storage.ErrResultNotFound) {
		h.logger.Error("failed to load review result", "job_id", id, "error", err)
		http.Error(w, "failed to load review result", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, jobResponse(job, result))
}

// jobResponse assembles the API view of a job. A result row that fails to
// decode is treated as absent rather than erroring the read path.
func jobResponse(job *core.ReviewJob, result *core.ReviewResult) reviewResponse {
	resp := reviewResponse{
		ID:        job.ID,
		Status:    job.Status,
		Comments:  []core.Finding{},
		Agents:    []string{},
		CreatedAt: formatTime(job.CreatedAt),
		UpdatedAt: formatTime(job.UpdatedAt),
	}
	if result == nil {
		return resp
	}

	resp.Summary = result.Summary
	var payload core.ResultPayload
	if err := json.Unmarshal([]byte(result.RawResponse), &payload); err != nil {
		return resp
	}
	if payload.Comments != nil {
		resp.Comments = payload.Comments
	}
	if payload.Metadata.AgentsRun != nil {
		resp.Agents = payload.Metadata.AgentsRun
	}
	metadata := payload.Metadata
	resp.Metrics = &metadata
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
