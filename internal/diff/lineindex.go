package diff

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRegex = regexp.MustCompile(`@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// LineIndex maps a file path to the set of new-file line numbers that are
// visible on the post-change side of the diff. These are the only lines that
// can receive an inline comment in the hosting platform's review UI.
type LineIndex map[string]map[int]struct{}

// Contains reports whether the given (file, line) pair can anchor an inline
// comment.
func (idx LineIndex) Contains(path string, line int) bool {
	lines, ok := idx[path]
	if !ok {
		return false
	}
	_, ok = lines[line]
	return ok
}

// BuildLineIndex re-walks diff text and records, per file, every new-file
// line number that is an addition or unchanged context inside a hunk.
// Removed lines have no new-side anchor and are excluded. A malformed hunk
// header disables tracking for that file until the next valid header,
// mirroring the parser's unknown-counter behavior. Empty diff text yields an
// empty index.
//
// Lines with an unrecognized prefix are treated as context and advance the
// counter; tightening this could reject real-world diffs with unusual
// markers. "\" marker lines ("no newline at end of file") are skipped.
func BuildLineIndex(diffText string, logger *slog.Logger) LineIndex {
	index := make(LineIndex)
	if diffText == "" {
		return index
	}

	currentFile := ""
	// 0 means the counter is unknown and lines cannot be attributed.
	nextLine := 0

	for _, line := range strings.Split(strings.TrimSuffix(diffText, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			currentFile = ""
			nextLine = 0
			continue
		case strings.HasPrefix(line, "+++ b/"):
			currentFile = strings.TrimSpace(line[len("+++ b/"):])
			continue
		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRegex.FindStringSubmatch(line)
			if m == nil {
				if logger != nil {
					logger.Warn("skipped malformed hunk header", "line", line)
				}
				nextLine = 0
				continue
			}
			start, err := strconv.Atoi(m[3])
			if err != nil {
				nextLine = 0
				continue
			}
			nextLine = start
			continue
		}

		if currentFile == "" || nextLine == 0 {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			addLine(index, currentFile, nextLine)
			nextLine++
		case strings.HasPrefix(line, "-"):
			continue
		case strings.HasPrefix(line, `\`):
			continue
		default:
			addLine(index, currentFile, nextLine)
			nextLine++
		}
	}

	return index
}

func addLine(index LineIndex, path string, line int) {
	lines, ok := index[path]
	if !ok {
		lines = make(map[int]struct{})
		index[path] = lines
	}
	lines[line] = struct{}{}
}
