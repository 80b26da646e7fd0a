package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxmikant/ryzl/internal/config"
	"github.com/luxmikant/ryzl/internal/core"
)

const webhookSecret = "test-secret"

func signPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func webhookRequest(payload []byte, event, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/github/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", event)
	req.Header.Set("X-Hub-Signature-256", signature)
	return req
}

func prEventPayload(action string) []byte {
	return []byte(`{
		"action": "` + action + `",
		"number": 7,
		"pull_request": {"number": 7},
		"repository": {"full_name": "octo/widgets"}
	}`)
}

func webhookHandler(store *fakeStore, dispatcher *fakeDispatcher) *WebhookHandler {
	cfg := &config.Config{GitHubWebhookSecret: webhookSecret}
	return NewWebhookHandler(cfg, store, dispatcher, testLogger())
}

func TestWebhookCreatesJobForOpenedPR(t *testing.T) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	h := webhookHandler(store, dispatcher)

	payload := prEventPayload("opened")
	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest(payload, "pull_request", signPayload(payload)))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, store.created, 1)

	job := store.created[0]
	assert.Equal(t, core.SourceGitHub, job.Source)
	assert.Equal(t, "octo/widgets", job.Repo)
	assert.Equal(t, "7", job.PRNumber)
	assert.Empty(t, job.DiffSnapshot)
	assert.Equal(t, []string{job.ID}, dispatcher.dispatched)
}

func TestWebhookHandledActions(t *testing.T) {
	tests := []struct {
		action  string
		wantJob bool
	}{
		{"opened", true},
		{"synchronize", true},
		{"ready_for_review", true},
		{"closed", false},
		{"labeled", false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			store := newFakeStore()
			h := webhookHandler(store, &fakeDispatcher{})

			payload := prEventPayload(tt.action)
			rec := httptest.NewRecorder()
			h.Handle(rec, webhookRequest(payload, "pull_request", signPayload(payload)))

			if tt.wantJob {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Len(t, store.created, 1)
			} else {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Empty(t, store.created)
			}
		})
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	store := newFakeStore()
	h := webhookHandler(store, &fakeDispatcher{})

	payload := prEventPayload("opened")
	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest(payload, "pull_request", "sha256=deadbeef"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.created)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	store := newFakeStore()
	h := webhookHandler(store, &fakeDispatcher{})

	payload := []byte(`{"zen": "Keep it logically awesome."}`)
	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest(payload, "ping", signPayload(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.created)
}

func TestWebhookRequiresConfiguredSecret(t *testing.T) {
	cfg := &config.Config{}
	h := NewWebhookHandler(cfg, newFakeStore(), &fakeDispatcher{}, testLogger())

	payload := prEventPayload("opened")
	rec := httptest.NewRecorder()
	h.Handle(rec, webhookRequest(payload, "pull_request", signPayload(payload)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
