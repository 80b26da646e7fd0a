package llm

import (
	"fmt"
)

// systemPrompt is the fixed instruction given to the model for every review.
const systemPrompt = `You are an experienced code reviewer. You receive a unified diff and respond
with a single JSON object of the shape:
{"summary": "...", "comments": [{"file_path": "...", "line_number_start": 1,
"line_number_end": 1, "category": "...", "severity": "...", "title": "...",
"body": "...", "suggested_fix": "...", "agent": "..."}], "agents": ["..."]}
Anchor every comment to new-file line numbers from the diff. Keep the summary
to a few sentences. Respond with JSON only, no surrounding prose.`

// SystemPrompt returns the fixed review instruction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt embeds the diff into the user-role message for one review run.
func UserPrompt(diffText string) string {
	return fmt.Sprintf("Review the following unified diff and report your findings.\n\n```diff\n%s\n```", diffText)
}
