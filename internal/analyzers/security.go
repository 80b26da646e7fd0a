package analyzers

import (
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// defaultDangerousTokens are substrings that frequently indicate insecure
// calls or leaked credentials when they show up in a diff.
var defaultDangerousTokens = []string{
	"eval(",
	"exec(",
	"os.system(",
	"subprocess.Popen",
	"SECRET_KEY",
	"password=",
}

// Security flags added lines that contain any of a fixed set of dangerous
// tokens. ExtraTokens widens the set without replacing the defaults.
type Security struct {
	ExtraTokens []string
}

func (s *Security) Name() string { return "security-agent" }

func (s *Security) Run(files []diff.ParsedFile) []core.Finding {
	tokens := defaultDangerousTokens
	if len(s.ExtraTokens) > 0 {
		tokens = append(append([]string{}, defaultDangerousTokens...), s.ExtraTokens...)
	}

	var findings []core.Finding
	for _, file := range files {
		for _, add := range file.Additions {
			if containsAny(add.Text, tokens) {
				findings = append(findings, core.Finding{
					Agent:     s.Name(),
					FilePath:  file.Path,
					LineStart: add.Number,
					LineEnd:   add.Number,
					Category:  "security",
					Severity:  "warning",
					Title:     "Potential insecure call",
					Body: "The diff introduces a pattern that often leads to security issues." +
						" Validate inputs or leverage safer helpers.",
					SuggestedFix: "Replace the insecure call with a vetted helper or sanitize inputs first.",
				})
			}
		}
	}
	return findings
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
