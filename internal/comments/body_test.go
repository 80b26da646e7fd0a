package comments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxmikant/ryzl/internal/core"
)

func TestBuildSummaryBodyBasic(t *testing.T) {
	findings := []core.Finding{
		{
			Agent:     "security-agent",
			FilePath:  "app/service.py",
			LineStart: 10,
			LineEnd:   12,
			Category:  "security",
			Severity:  "warning",
			Title:     "Potential insecure call",
			Body:      "Validate inputs first.",
		},
	}
	run := &core.PipelineRun{
		TotalFindings:     1,
		FilesReviewed:     2,
		SeverityBreakdown: map[string]int{"warning": 1},
		Categories:        []string{"security"},
	}

	body := BuildSummaryBody("All good overall.", findings, 10, run, 0, 1)

	assert.True(t, strings.HasPrefix(body, "## 🤖 Automated Review Summary"))
	assert.Contains(t, body, "All good overall.")
	assert.Contains(t, body, "**Metrics:** 1 comment(s) · 2 file(s) reviewed")
	assert.Contains(t, body, "**Severity Breakdown:** warning: 1")
	assert.Contains(t, body, "**Categories:** security")
	assert.Contains(t, body, "### Key Findings")
	assert.Contains(t, body, "1. **Potential insecure call** — `app/service.py` L10-12 (WARNING · Security)")
	assert.Contains(t, body, "   - Validate inputs first.")
	assert.True(t, strings.HasSuffix(body, "_Generated automatically by ryzl review service._"))
	assert.NotContains(t, body, "inline comment(s)")
}

func TestBuildSummaryBodyInlineNote(t *testing.T) {
	body := BuildSummaryBody("Summary.", nil, 10, nil, 3, 5)
	assert.Contains(t, body, "_Posted 3 inline comment(s); remaining findings summarized below._")
	assert.Contains(t, body, "No additional issues are listed in this summary.")
}

func TestBuildSummaryBodyTruncation(t *testing.T) {
	findings := make([]core.Finding, 5)
	for i := range findings {
		findings[i] = core.Finding{
			FilePath:  "a.py",
			LineStart: i + 1,
			Title:     "Issue",
			Body:      "Details.",
			Severity:  "info",
			Category:  "logic",
		}
	}

	body := BuildSummaryBody("Summary.", findings, 2, nil, 0, 5)
	assert.Contains(t, body, "...and 3 more comment(s) not shown here.")
	assert.Equal(t, 2, strings.Count(body, "**Issue**"))
}

func TestBuildSummaryBodyEmptySummary(t *testing.T) {
	body := BuildSummaryBody("   ", nil, 10, nil, 0, 0)
	assert.Contains(t, body, "No summary provided.")
}

func TestBuildSummaryBodyTotalFallback(t *testing.T) {
	// A run without its own total falls back to the caller-provided count.
	run := &core.PipelineRun{}
	body := BuildSummaryBody("Summary.", nil, 10, run, 0, 7)
	assert.Contains(t, body, "**Metrics:** 7 comment(s)")
	assert.NotContains(t, body, "file(s) reviewed")
}

func TestFormatLineRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"single line", 10, 10, "L10"},
		{"range", 10, 12, "L10-12"},
		{"start only", 10, 0, "L10"},
		{"end only", 0, 12, "L12"},
		{"absent", 0, 0, ""},
		{"negative treated as absent", -1, -2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatLineRange(core.Finding{LineStart: tt.start, LineEnd: tt.end})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFindingSectionWithoutLocation(t *testing.T) {
	f := core.Finding{FilePath: "a.py", Title: "Issue", Body: "Details.", Severity: "info", Category: "logic"}
	section := formatFindingSection(1, f)
	require.Contains(t, section, "1. **Issue** — `a.py` (INFO · Logic)")
}
