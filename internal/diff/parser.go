// Package diff parses unified diff text into per-file views and builds the
// line index used to anchor review findings to the post-change side of a
// pull request.
package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var newStartRegex = regexp.MustCompile(`\+(\d+)`)

// Line is one added or removed line together with its line number. For
// additions the number is in new-file numbering; for deletions it is the
// running new-file counter at the point of removal.
type Line struct {
	Number int
	Text   string
}

// ParsedFile is the per-file view of a unified diff: the file's path plus its
// added and removed lines in diff order.
type ParsedFile struct {
	Path      string
	Additions []Line
	Deletions []Line
}

// Parse scans unified diff text and returns one ParsedFile per file, in the
// order files appear in the diff. A missing or malformed hunk header resets
// the new-line counter to unknown, which disables line attribution (added
// lines fall back to line 1) until the next valid header. File records that
// never resolved a path and recorded no changes are dropped as parser noise.
func Parse(diffText string) []ParsedFile {
	var files []ParsedFile
	var current *ParsedFile
	currentLine := 0

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			if current != nil {
				files = append(files, *current)
			}
			current = &ParsedFile{Path: "unknown"}
			currentLine = 0
			continue
		}

		if strings.HasPrefix(line, "+++") {
			if current != nil {
				normalized := strings.Replace(line, "+++ b/", "", 1)
				normalized = strings.Replace(normalized, "+++ ", "", 1)
				current.Path = normalized
			}
			continue
		}

		if strings.HasPrefix(line, "@@") {
			currentLine = 0
			if m := newStartRegex.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					currentLine = n
				}
			}
			continue
		}

		if strings.HasPrefix(line, "+") {
			if current != nil {
				current.Additions = append(current.Additions, Line{Number: orOne(currentLine), Text: line[1:]})
				currentLine++
			}
			continue
		}

		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			if current != nil {
				current.Deletions = append(current.Deletions, Line{Number: orOne(currentLine), Text: line[1:]})
			}
			continue
		}

		// Context (or any unrecognized) line: advance only when the counter
		// is known.
		if currentLine != 0 {
			currentLine++
		}
	}

	if current != nil {
		files = append(files, *current)
	}

	kept := make([]ParsedFile, 0, len(files))
	for _, f := range files {
		if f.Path != "unknown" || len(f.Additions) > 0 || len(f.Deletions) > 0 {
			kept = append(kept, f)
		}
	}
	return kept
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
