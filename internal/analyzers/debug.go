package analyzers

import (
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// DebugArtifact flags leftover development artifacts in added lines: TODO and
// FIXME markers, and bare print calls in non-test files. A single line can
// produce both findings.
type DebugArtifact struct{}

func (d *DebugArtifact) Name() string { return "debug-artifact-agent" }

func (d *DebugArtifact) Run(files []diff.ParsedFile) []core.Finding {
	var findings []core.Finding
	for _, file := range files {
		pathIsTest := strings.Contains(strings.ToLower(file.Path), "test")
		for _, add := range file.Additions {
			lowered := strings.ToLower(add.Text)
			if strings.Contains(lowered, "todo") || strings.Contains(lowered, "fixme") {
				findings = append(findings, core.Finding{
					Agent:        d.Name(),
					FilePath:     file.Path,
					LineStart:    add.Number,
					LineEnd:      add.Number,
					Category:     "project-management",
					Severity:     "info",
					Title:        "Leftover TODO/FIXME",
					Body:         "Track TODOs in an issue instead of shipping them in code.",
					SuggestedFix: "Open an issue and remove the inline TODO before merge.",
				})
			}
			if strings.Contains(add.Text, "print(") && !pathIsTest {
				findings = append(findings, core.Finding{
					Agent:        d.Name(),
					FilePath:     file.Path,
					LineStart:    add.Number,
					LineEnd:      add.Number,
					Category:     "observability",
					Severity:     "info",
					Title:        "Debug print detected",
					Body:         "Prefer structured logging over bare print statements in production modules.",
					SuggestedFix: "Use the shared logger instead of print().",
				})
			}
		}
	}
	return findings
}
