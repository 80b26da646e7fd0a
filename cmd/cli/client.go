package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// reviewResult mirrors the JSON responses of the reviews API.
type reviewResult struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Summary   string          `json:"summary"`
	Comments  []reviewComment `json:"comments"`
	Agents    []string        `json:"agents"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type reviewComment struct {
	Agent     string `json:"agent"`
	FilePath  string `json:"file_path"`
	LineStart int    `json:"line_number_start"`
	LineEnd   int    `json:"line_number_end"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// apiClient is a thin HTTP client for the review service API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) submitReview(ctx context.Context, source, diff, repo string, prNumber int) (*reviewResult, []byte, error) {
	payload := map[string]any{"source": source}
	if diff != "" {
		payload["diff"] = diff
	}
	if repo != "" {
		payload["repo"] = repo
	}
	if prNumber > 0 {
		payload["pr_number"] = prNumber
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/reviews", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, http.StatusCreated)
}

func (c *apiClient) getReview(ctx context.Context, jobID string) (*reviewResult, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/reviews/"+jobID, nil)
	if err != nil {
		return nil, nil, err
	}

	return c.do(req, http.StatusOK)
}

func (c *apiClient) do(req *http.Request, wantStatus int) (*reviewResult, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, raw, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var result reviewResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, raw, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, raw, nil
}
