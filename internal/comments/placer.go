// Package comments decides which findings can be anchored inline on the pull
// request diff, renders the inline and summary comment bodies, and runs the
// best-effort sync of a finished review back to the hosting platform.
package comments

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
	"github.com/luxmikant/ryzl/internal/github"
)

// BuildInlineComments partitions findings into inline-anchorable payloads and
// a remainder list. A finding goes inline only while the accepted count is
// below maxInline, it names a file, it resolves an anchor line, and that
// (file, line) pair is visible on the post-change side of the diff. Original
// order is preserved in both outputs, and every finding lands in exactly one
// of them.
func BuildInlineComments(findings []core.Finding, diffText string, maxInline int, logger *slog.Logger) ([]github.DraftReviewComment, []core.Finding) {
	index := diff.BuildLineIndex(diffText, logger)
	if maxInline < 0 {
		maxInline = 0
	}

	var inline []github.DraftReviewComment
	var remainder []core.Finding

	for _, finding := range findings {
		if len(inline) < maxInline && canMapInline(finding, index) {
			inline = append(inline, toInlineComment(finding))
			continue
		}
		remainder = append(remainder, finding)
	}

	return inline, remainder
}

func canMapInline(finding core.Finding, index diff.LineIndex) bool {
	if finding.FilePath == "" {
		return false
	}
	line := finding.AnchorLine()
	if line == 0 {
		return false
	}
	return index.Contains(finding.FilePath, line)
}

func toInlineComment(finding core.Finding) github.DraftReviewComment {
	comment := github.DraftReviewComment{
		Path: finding.FilePath,
		Line: finding.AnchorLine(),
		Side: "RIGHT",
		Body: formatInlineBody(finding),
	}
	if finding.LineStart > 0 && finding.LineEnd > finding.LineStart {
		comment.StartLine = finding.LineStart
		comment.StartSide = "RIGHT"
	}
	return comment
}

func formatInlineBody(finding core.Finding) string {
	severity := strings.ToUpper(orDefault(finding.Severity, "info"))
	category := titleCase(orDefault(finding.Category, "general"))
	title := finding.Title
	if title == "" {
		title = category + " issue"
	}

	sections := []string{
		fmt.Sprintf("**%s** (%s · %s)", title, severity, category),
		orDefault(finding.Body, "No description provided."),
	}
	if finding.SuggestedFix != "" {
		sections = append(sections, "Suggested fix: "+finding.SuggestedFix)
	}
	if finding.Agent != "" {
		sections = append(sections, "Agent: "+finding.Agent)
	}
	return strings.Join(sections, "\n\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// titleCase upper-cases the first letter of every word, treating any
// non-letter as a word boundary ("project-management" becomes
// "Project-Management").
func titleCase(s string) string {
	startOfWord := true
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) {
			startOfWord = true
			return r
		}
		if startOfWord {
			startOfWord = false
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	}, s)
}
