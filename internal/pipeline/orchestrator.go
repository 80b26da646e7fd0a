// Package pipeline runs one of the interchangeable review strategies over a
// diff and produces the summary, findings, and run metadata persisted with
// the job.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/luxmikant/ryzl/internal/analyzers"
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/llm"
)

// Strategy is one interchangeable implementation of the review pipeline. An
// empty diffText means no diff was available; strategies must degrade to an
// empty "skipped" result rather than fail in that case.
type Strategy interface {
	Name() string
	Run(ctx context.Context, diffText string) (summary string, findings []core.Finding, run core.PipelineRun, err error)
}

// ForMode selects the strategy for a configured mode string. The mode is
// normalized (trimmed, lowercased) here and nowhere else: "stub" selects the
// stub strategy, "llm" the model-backed one, and anything else falls back to
// the heuristic multi-analyzer pipeline.
func ForMode(mode string, set []analyzers.Analyzer, model llm.Client, logger *slog.Logger) Strategy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "stub":
		return NewStub()
	case "llm":
		return NewLLM(model, logger)
	default:
		return NewHeuristic(set, logger)
	}
}

// severityBreakdown counts findings per distinct severity value.
func severityBreakdown(findings []core.Finding) map[string]int {
	breakdown := make(map[string]int)
	for _, f := range findings {
		breakdown[f.Severity]++
	}
	return breakdown
}

// distinctCategories returns the sorted distinct category values.
func distinctCategories(findings []core.Finding) []string {
	seen := make(map[string]struct{})
	for _, f := range findings {
		seen[f.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// countFileBoundaries is the trivial files-reviewed fallback: the number of
// file boundary markers in the diff, minimum one.
func countFileBoundaries(diffText string) int {
	n := strings.Count(diffText, "diff --git")
	if n < 1 {
		return 1
	}
	return n
}
