package comments

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
)

const summaryHeader = "## 🤖 Automated Review Summary"
const attributionLine = "_Generated automatically by ryzl review service._"

// BuildSummaryBody renders the markdown body for the summary comment. The
// rendering is deterministic: header, summary text (or a placeholder), an
// inline-posted note when inlinePosted is positive, a metrics block from the
// run metadata, a Key Findings list capped at maxListItems with a truncation
// line, and a closing attribution. run may be nil when no metadata exists.
func BuildSummaryBody(summary string, findings []core.Finding, maxListItems int, run *core.PipelineRun, inlinePosted, totalCount int) string {
	safeSummary := strings.TrimSpace(summary)
	if safeSummary == "" {
		safeSummary = "No summary provided."
	}

	lines := []string{summaryHeader, "", safeSummary, ""}
	if inlinePosted > 0 {
		lines = append(lines, fmt.Sprintf("_Posted %d inline comment(s); remaining findings summarized below._", inlinePosted))
		lines = append(lines, "")
	}

	lines = append(lines, formatMetrics(run, totalCount)...)
	if len(lines) > 4 {
		lines = append(lines, "")
	}

	lines = append(lines, "### Key Findings")
	if len(findings) == 0 {
		lines = append(lines, "No additional issues are listed in this summary.")
	} else {
		limit := maxListItems
		if limit < 0 {
			limit = 0
		}
		if limit > len(findings) {
			limit = len(findings)
		}
		for i, finding := range findings[:limit] {
			lines = append(lines, formatFindingSection(i+1, finding))
			lines = append(lines, "")
		}
		if remaining := len(findings) - limit; remaining > 0 {
			lines = append(lines, fmt.Sprintf("...and %d more comment(s) not shown here.", remaining))
			lines = append(lines, "")
		}
	}

	lines = append(lines, "---", attributionLine)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// formatMetrics builds the metrics block from run metadata. Each sub-line is
// omitted when its source data is empty; a nil run yields nothing.
func formatMetrics(run *core.PipelineRun, totalCount int) []string {
	if run == nil {
		return nil
	}

	var metrics []string

	total := run.TotalFindings
	if total == 0 {
		total = totalCount
	}
	summaryParts := []string{fmt.Sprintf("%d comment(s)", total)}
	if run.FilesReviewed > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d file(s) reviewed", run.FilesReviewed))
	}
	metrics = append(metrics, "**Metrics:** "+strings.Join(summaryParts, " · "))

	if len(run.SeverityBreakdown) > 0 {
		levels := make([]string, 0, len(run.SeverityBreakdown))
		for level := range run.SeverityBreakdown {
			levels = append(levels, level)
		}
		sort.Strings(levels)
		items := make([]string, 0, len(levels))
		for _, level := range levels {
			items = append(items, fmt.Sprintf("%s: %d", level, run.SeverityBreakdown[level]))
		}
		metrics = append(metrics, "**Severity Breakdown:** "+strings.Join(items, ", "))
	}

	if len(run.Categories) > 0 {
		metrics = append(metrics, "**Categories:** "+strings.Join(run.Categories, ", "))
	}

	return metrics
}

func formatFindingSection(index int, finding core.Finding) string {
	location := formatLineRange(finding)
	locationDisplay := fmt.Sprintf(" `%s`", finding.FilePath)
	if location != "" {
		locationDisplay = fmt.Sprintf(" `%s` %s", finding.FilePath, location)
	}
	severity := strings.ToUpper(orDefault(finding.Severity, "info"))
	category := titleCase(orDefault(finding.Category, "general"))
	title := finding.Title
	if title == "" {
		title = category + " issue"
	}

	lines := []string{
		fmt.Sprintf("%d. **%s** —%s (%s · %s)", index, title, locationDisplay, severity, category),
		"   - " + finding.Body,
	}
	if finding.SuggestedFix != "" {
		lines = append(lines, "   - Suggested fix: "+finding.SuggestedFix)
	}
	if finding.Agent != "" {
		lines = append(lines, "   - Agent: "+finding.Agent)
	}
	return strings.Join(lines, "\n")
}

// formatLineRange renders the "L10-12" style location badge. Non-positive
// line numbers are treated as absent.
func formatLineRange(finding core.Finding) string {
	start := finding.LineStart
	if start < 0 {
		start = 0
	}
	end := finding.LineEnd
	if end < 0 {
		end = 0
	}

	if start == 0 && end == 0 {
		return ""
	}
	if end != 0 && end != start {
		if start != 0 {
			return fmt.Sprintf("L%d-%d", start, end)
		}
		return fmt.Sprintf("L%d", end)
	}
	if start != 0 {
		return fmt.Sprintf("L%d", start)
	}
	return ""
}
