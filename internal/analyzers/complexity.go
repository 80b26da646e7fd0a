package analyzers

import (
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// maxLineLength is the threshold above which an added line is flagged as hard
// to read.
const maxLineLength = 120

// Complexity flags added lines that exceed the line-length threshold.
type Complexity struct{}

func (c *Complexity) Name() string { return "complexity-agent" }

func (c *Complexity) Run(files []diff.ParsedFile) []core.Finding {
	var findings []core.Finding
	for _, file := range files {
		for _, add := range file.Additions {
			if len(add.Text) > maxLineLength {
				findings = append(findings, core.Finding{
					Agent:        c.Name(),
					FilePath:     file.Path,
					LineStart:    add.Number,
					LineEnd:      add.Number,
					Category:     "maintainability",
					Severity:     "warning",
					Title:        "Long line may hurt readability",
					Body:         "Consider breaking this statement into smaller chunks or helper functions.",
					SuggestedFix: "Wrap the logic across multiple lines or extract helpers.",
				})
			}
		}
	}
	return findings
}
