package llm

import (
	"context"
	"encoding/json"
)

type mockClient struct{}

// NewMockClient returns a deterministic Client that produces the same canned
// review payload on every call. It backs the "mock" provider used in tests
// and local development.
func NewMockClient() Client {
	return &mockClient{}
}

func (m *mockClient) Generate(_ context.Context, _, _ string) (*Response, error) {
	payload := map[string]any{
		"summary": "Mock summary for testing.",
		"comments": []map[string]any{
			{
				"file_path":         "app/example.py",
				"line_number_start": 10,
				"line_number_end":   15,
				"category":          "logic",
				"severity":          "info",
				"title":             "Mock comment",
				"body":              "This is a deterministic mock comment for tests.",
				"suggested_fix":     "Replace with real LLM output.",
				"agent":             "llm-mock-agent",
			},
		},
	}
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:          string(content),
		TokensPrompt:     100,
		TokensCompletion: 50,
		LatencyMS:        5.0,
	}, nil
}
