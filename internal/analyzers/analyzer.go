// Package analyzers contains the heuristic review agents that inspect a
// parsed diff and produce findings. Analyzers are independent of each other:
// they share no mutable state and only read the parsed files, so they may run
// in any order or concurrently. Presentation order is fixed by the registered
// analyzer list.
package analyzers

import (
	"github.com/luxmikant/ryzl/internal/core"
	"github.com/luxmikant/ryzl/internal/diff"
)

// Analyzer is one independent review agent. Run must be safe to call
// concurrently with other analyzers and must not mutate the parsed files.
type Analyzer interface {
	Name() string
	Run(files []diff.ParsedFile) []core.Finding
}

// DefaultSet returns the built-in analyzers in their canonical registration
// order. Findings are presented in this order regardless of how the analyzers
// were executed.
func DefaultSet() []Analyzer {
	return []Analyzer{
		&Complexity{},
		&DebugArtifact{},
		&Security{},
		&TestingCoverage{},
	}
}

// Names returns the analyzer names in registration order.
func Names(set []Analyzer) []string {
	names := make([]string, 0, len(set))
	for _, a := range set {
		names = append(names, a.Name())
	}
	return names
}
