package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/llm"
)

const llmAgentName = "llm-orchestrator"

// invalidOutputSummary replaces the model's summary when its response cannot
// be decoded as a review payload. The job still completes in that case.
const invalidOutputSummary = "LLM orchestrator returned invalid output; no findings recorded."

// LLM delegates the whole review to a remote model: the diff is embedded in a
// prompt, the model's structured response is decoded into findings, and its
// token and latency counters are carried into the run metadata. A failed
// model call is fatal to the run since the model is this strategy's only
// source of content; an undecodable response merely degrades to an empty
// review.
type LLM struct {
	client llm.Client
	logger *slog.Logger
}

// NewLLM returns the model-backed strategy.
func NewLLM(client llm.Client, logger *slog.Logger) *LLM {
	return &LLM{client: client, logger: logger}
}

func (l *LLM) Name() string { return llmAgentName }

func (l *LLM) Run(ctx context.Context, diffText string) (string, []core.Finding, core.PipelineRun, error) {
	if diffText == "" {
		run := core.PipelineRun{
			AgentsRun:         []string{llmAgentName},
			SeverityBreakdown: map[string]int{},
			Categories:        []string{},
		}
		return "No diff provided; LLM review skipped.", nil, run, nil
	}

	resp, err := l.client.Generate(ctx, llm.SystemPrompt(), llm.UserPrompt(diffText))
	if err != nil {
		return "", nil, core.PipelineRun{}, fmt.Errorf("model generation failed: %w", err)
	}

	summary := invalidOutputSummary
	var findings []core.Finding
	agents := []string{llmAgentName}

	payload, parseErr := llm.ParseReviewPayload(resp.Content)
	if parseErr != nil {
		l.logger.Warn("discarding unparsable model output", "error", parseErr)
	} else {
		summary = payload.Summary
		findings = payload.Comments
		if len(payload.Agents) > 0 {
			agents = payload.Agents
		}
	}

	run := core.PipelineRun{
		AgentsRun:         agents,
		TotalFindings:     len(findings),
		FilesReviewed:     countFileBoundaries(diffText),
		SeverityBreakdown: severityBreakdown(findings),
		Categories:        distinctCategories(findings),
		TokensPrompt:      resp.TokensPrompt,
		TokensCompletion:  resp.TokensCompletion,
		LatencyMS:         resp.LatencyMS,
	}
	return summary, findings, run, nil
}
