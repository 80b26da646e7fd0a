package core

// Finding is one structured review observation produced by an analyzer or by
// the remote model. Line numbers refer to the new-file side of the diff; a
// finding with no positive line number cannot be anchored inline. Findings are
// immutable once produced and only the per-job aggregate list matters.
type Finding struct {
	Agent        string `json:"agent,omitempty"`
	FilePath     string `json:"file_path"`
	LineStart    int    `json:"line_number_start"`
	LineEnd      int    `json:"line_number_end"`
	Category     string `json:"category"`
	Severity     string `json:"severity"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

// AnchorLine returns the line a finding should be attached to when placed
// inline, preferring the end of its range. Zero means the finding has no
// usable anchor.
func (f Finding) AnchorLine() int {
	if f.LineEnd > 0 {
		return f.LineEnd
	}
	if f.LineStart > 0 {
		return f.LineStart
	}
	return 0
}

// PipelineRun captures metadata about one pipeline execution. Token and
// latency counters are only populated by the model-backed strategy.
type PipelineRun struct {
	AgentsRun         []string       `json:"agents_run"`
	TotalFindings     int            `json:"total_comments"`
	FilesReviewed     int            `json:"files_reviewed"`
	SeverityBreakdown map[string]int `json:"severity_breakdown"`
	Categories        []string       `json:"categories_detected"`
	TokensPrompt      int            `json:"tokens_prompt,omitempty"`
	TokensCompletion  int            `json:"tokens_completion,omitempty"`
	LatencyMS         float64        `json:"latency_ms,omitempty"`
}

// ResultPayload is the serialized body of a ReviewResult row. Its JSON shape
// must round-trip the finding list and run metadata exactly.
type ResultPayload struct {
	Comments []Finding   `json:"comments"`
	Metadata PipelineRun `json:"metadata"`
}
