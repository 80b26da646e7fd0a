package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/luxmikant/ryzl/internal/analyzers"
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// Heuristic runs the configured analyzer set over the parsed diff. Analyzers
// execute concurrently since they share no mutable state; results are
// collected into per-analyzer slots so the presented finding order always
// follows analyzer registration order.
type Heuristic struct {
	set    []analyzers.Analyzer
	logger *slog.Logger
}

// NewHeuristic returns the multi-analyzer strategy.
func NewHeuristic(set []analyzers.Analyzer, logger *slog.Logger) *Heuristic {
	return &Heuristic{set: set, logger: logger}
}

func (h *Heuristic) Name() string { return "multi-agent" }

func (h *Heuristic) Run(ctx context.Context, diffText string) (string, []core.Finding, core.PipelineRun, error) {
	if diffText == "" {
		run := core.PipelineRun{
			AgentsRun:         analyzers.Names(h.set),
			SeverityBreakdown: map[string]int{},
			Categories:        []string{},
		}
		return "No diff provided; multi-agent review skipped.", nil, run, nil
	}

	parsedFiles := diff.Parse(diffText)

	slots := make([][]core.Finding, len(h.set))
	g, _ := errgroup.WithContext(ctx)
	for i, analyzer := range h.set {
		g.Go(func() error {
			slots[i] = analyzer.Run(parsedFiles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, core.PipelineRun{}, err
	}

	var findings []core.Finding
	for _, slot := range slots {
		findings = append(findings, slot...)
	}

	run := core.PipelineRun{
		AgentsRun:         analyzers.Names(h.set),
		TotalFindings:     len(findings),
		FilesReviewed:     len(parsedFiles),
		SeverityBreakdown: severityBreakdown(findings),
		Categories:        distinctCategories(findings),
	}

	h.logger.Debug("heuristic pipeline finished",
		"files", run.FilesReviewed,
		"findings", run.TotalFindings,
	)
	return buildHeuristicSummary(run), findings, run, nil
}

// buildHeuristicSummary renders the one-sentence run summary, appending the
// severity and focus-area clauses only when there is data for them.
func buildHeuristicSummary(run core.PipelineRun) string {
	parts := []string{fmt.Sprintf(
		"Multi-agent review touched %d file(s) and produced %d actionable insight(s).",
		run.FilesReviewed, run.TotalFindings,
	)}

	if len(run.SeverityBreakdown) > 0 {
		levels := make([]string, 0, len(run.SeverityBreakdown))
		for level := range run.SeverityBreakdown {
			levels = append(levels, level)
		}
		sort.Strings(levels)
		buckets := make([]string, 0, len(levels))
		for _, level := range levels {
			buckets = append(buckets, fmt.Sprintf("%s:%d", level, run.SeverityBreakdown[level]))
		}
		parts = append(parts, fmt.Sprintf("Severity mix -> %s.", strings.Join(buckets, ", ")))
	}

	if len(run.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("Focus areas: %s.", strings.Join(run.Categories, ", ")))
	}

	return strings.Join(parts, " ")
}
