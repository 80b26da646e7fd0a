package analyzers

import (
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// codeFileSuffixes identify files that count as application source for the
// coverage heuristic.
var codeFileSuffixes = []string{".go", ".py", ".js", ".ts", ".java", ".rb"}

// TestingCoverage emits a single finding when application code changed but no
// test file was touched anywhere in the diff. The finding is anchored to the
// first code file, lines 1-5.
type TestingCoverage struct{}

func (t *TestingCoverage) Name() string { return "testing-agent" }

func (t *TestingCoverage) Run(files []diff.ParsedFile) []core.Finding {
	if len(files) == 0 {
		return nil
	}

	var firstCodeFile string
	testsTouched := false
	for _, file := range files {
		lowered := strings.ToLower(file.Path)
		if strings.Contains(lowered, "test") {
			testsTouched = true
			continue
		}
		if firstCodeFile == "" && hasCodeSuffix(file.Path) {
			firstCodeFile = file.Path
		}
	}

	if firstCodeFile == "" || testsTouched {
		return nil
	}

	return []core.Finding{{
		Agent:        t.Name(),
		FilePath:     firstCodeFile,
		LineStart:    1,
		LineEnd:      5,
		Category:     "testing",
		Severity:     "info",
		Title:        "No accompanying tests",
		Body:         "Application code changed but no tests were updated. Consider adding coverage for regressions.",
		SuggestedFix: "Add or update tests to cover the new behavior.",
	}}
}

func hasCodeSuffix(path string) bool {
	for _, suffix := range codeFileSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
