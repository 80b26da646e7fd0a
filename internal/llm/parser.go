package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxmikant/ryzl/internal/core"
)

// ReviewPayload is the structured output expected from the model.
type ReviewPayload struct {
	Summary  string         `json:"summary"`
	Comments []core.Finding `json:"comments"`
	Agents   []string       `json:"agents"`
}

// ParseReviewPayload decodes the model's response text into a ReviewPayload.
// Some models wrap their JSON in a code fence despite being asked not to, so
// a wrapping fence is stripped before decoding. Any other deviation from the
// expected shape is an error; the caller decides how to degrade.
func ParseReviewPayload(content string) (*ReviewPayload, error) {
	trimmed := stripJSONFence(content)

	payload := &ReviewPayload{}
	if err := json.Unmarshal([]byte(trimmed), payload); err != nil {
		return nil, fmt.Errorf("model output is not a valid review payload: %w", err)
	}
	return payload, nil
}

// stripJSONFence removes a ```json ... ``` wrapper if present.
func stripJSONFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return trimmed
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
