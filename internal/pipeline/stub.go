package pipeline

import (
	"context"

	"github.com/luxmikant/ryzl/internal/core"
)

const stubAgentName = "stub-agent"

// Stub is the deterministic placeholder strategy. It never inspects the diff
// content and exists so the rest of the system can be exercised without any
// analyzer or model in the loop.
type Stub struct{}

// NewStub returns the stub strategy.
func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) Name() string { return stubAgentName }

func (s *Stub) Run(_ context.Context, diffText string) (string, []core.Finding, core.PipelineRun, error) {
	if diffText == "" {
		run := core.PipelineRun{
			AgentsRun:         []string{stubAgentName},
			SeverityBreakdown: map[string]int{},
			Categories:        []string{},
		}
		return "Unable to perform review: no diff was provided.", nil, run, nil
	}

	findings := []core.Finding{{
		Agent:        stubAgentName,
		FilePath:     "unknown",
		LineStart:    1,
		LineEnd:      1,
		Category:     "general",
		Severity:     "info",
		Title:        "Stubbed review finding",
		Body:         "This placeholder finding was produced by the stub pipeline.",
		SuggestedFix: "Switch PIPELINE_MODE to a real strategy for actionable feedback.",
	}}

	run := core.PipelineRun{
		AgentsRun:         []string{stubAgentName},
		TotalFindings:     len(findings),
		FilesReviewed:     countFileBoundaries(diffText),
		SeverityBreakdown: severityBreakdown(findings),
		Categories:        distinctCategories(findings),
	}
	return "Stubbed review completed; findings are canned placeholders.", findings, run, nil
}
