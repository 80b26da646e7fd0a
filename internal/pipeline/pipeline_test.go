package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxmikant/ryzl/internal/analyzers"
	"github.com/luxmikant/ryzl/internal/llm"
)

const reviewDiff = `diff --git a/app/service.py b/app/service.py
--- a/app/service.py
+++ b/app/service.py
@@ -1,2 +1,4 @@
 import os
+# TODO: tighten this up
+eval(user_input)
 run()
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestForMode(t *testing.T) {
	set := analyzers.DefaultSet()
	logger := testLogger()

	tests := []struct {
		mode string
		want string
	}{
		{"stub", "stub-agent"},
		{" STUB ", "stub-agent"},
		{"llm", "llm-orchestrator"},
		{"multi-agent", "multi-agent"},
		{"", "multi-agent"},
		{"anything-else", "multi-agent"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			strategy := ForMode(tt.mode, set, llm.NewMockClient(), logger)
			assert.Equal(t, tt.want, strategy.Name())
		})
	}
}

func TestStubEmptyDiff(t *testing.T) {
	summary, findings, run, err := NewStub().Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Unable to perform review: no diff was provided.", summary)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"stub-agent"}, run.AgentsRun)
	assert.Zero(t, run.TotalFindings)
}

func TestStubCannedFinding(t *testing.T) {
	summary, findings, run, err := NewStub().Run(context.Background(), reviewDiff)
	require.NoError(t, err)
	assert.Equal(t, "Stubbed review completed; findings are canned placeholders.", summary)
	require.Len(t, findings, 1)
	assert.Equal(t, "stub-agent", findings[0].Agent)
	assert.Equal(t, 1, run.TotalFindings)
	assert.Equal(t, 1, run.FilesReviewed)
	assert.Equal(t, map[string]int{"info": 1}, run.SeverityBreakdown)
}

func TestHeuristicEmptyDiff(t *testing.T) {
	strategy := NewHeuristic(analyzers.DefaultSet(), testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No diff provided; multi-agent review skipped.", summary)
	assert.Empty(t, findings)
	assert.Equal(t, analyzers.Names(analyzers.DefaultSet()), run.AgentsRun)
}

func TestHeuristicRun(t *testing.T) {
	strategy := NewHeuristic(analyzers.DefaultSet(), testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), reviewDiff)
	require.NoError(t, err)

	// The fixture trips the debug, security, and testing analyzers once each.
	require.Len(t, findings, 3)
	assert.Equal(t, "debug-artifact-agent", findings[0].Agent)
	assert.Equal(t, "security-agent", findings[1].Agent)
	assert.Equal(t, "testing-agent", findings[2].Agent)

	assert.Equal(t, 3, run.TotalFindings)
	assert.Equal(t, 1, run.FilesReviewed)
	assert.Equal(t, map[string]int{"info": 2, "warning": 1}, run.SeverityBreakdown)
	assert.Equal(t, []string{"project-management", "security", "testing"}, run.Categories)

	assert.Contains(t, summary, "Multi-agent review touched 1 file(s) and produced 3 actionable insight(s).")
	assert.Contains(t, summary, "Severity mix -> info:2, warning:1.")
	assert.Contains(t, summary, "Focus areas: project-management, security, testing.")
}

func TestHeuristicSummaryNoFindings(t *testing.T) {
	diffText := `diff --git a/README.md b/README.md
--- a/README.md
+++ b/README.md
@@ -1 +1,2 @@
 title
+more docs
`
	strategy := NewHeuristic(analyzers.DefaultSet(), testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), diffText)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Zero(t, run.TotalFindings)
	assert.Equal(t, "Multi-agent review touched 1 file(s) and produced 0 actionable insight(s).", summary)
}

type fakeModel struct {
	resp *llm.Response
	err  error
}

func (f *fakeModel) Generate(context.Context, string, string) (*llm.Response, error) {
	return f.resp, f.err
}

func TestLLMEmptyDiff(t *testing.T) {
	strategy := NewLLM(&fakeModel{}, testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No diff provided; LLM review skipped.", summary)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"llm-orchestrator"}, run.AgentsRun)
}

func TestLLMSuccessfulRun(t *testing.T) {
	strategy := NewLLM(llm.NewMockClient(), testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), reviewDiff)
	require.NoError(t, err)
	assert.Equal(t, "Mock summary for testing.", summary)
	require.Len(t, findings, 1)
	assert.Equal(t, "llm-mock-agent", findings[0].Agent)

	assert.Equal(t, 100, run.TokensPrompt)
	assert.Equal(t, 50, run.TokensCompletion)
	assert.Equal(t, 5.0, run.LatencyMS)
	assert.Equal(t, 1, run.FilesReviewed)
	// Agents defaulted to the orchestrator since the mock payload names none.
	assert.Equal(t, []string{"llm-orchestrator"}, run.AgentsRun)
}

func TestLLMGenerationFailureIsFatal(t *testing.T) {
	strategy := NewLLM(&fakeModel{err: errors.New("rate limited")}, testLogger())

	_, _, _, err := strategy.Run(context.Background(), reviewDiff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model generation failed")
}

func TestLLMInvalidOutputDegrades(t *testing.T) {
	strategy := NewLLM(&fakeModel{resp: &llm.Response{
		Content:          "Sorry, I cannot produce JSON today.",
		TokensPrompt:     10,
		TokensCompletion: 4,
	}}, testLogger())

	summary, findings, run, err := strategy.Run(context.Background(), reviewDiff)
	require.NoError(t, err)
	assert.Equal(t, "LLM orchestrator returned invalid output; no findings recorded.", summary)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"llm-orchestrator"}, run.AgentsRun)
	assert.Zero(t, run.TotalFindings)
	assert.Equal(t, 10, run.TokensPrompt)
}
