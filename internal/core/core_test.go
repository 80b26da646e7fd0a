package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestAnchorLine(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"range prefers end", 10, 15, 15},
		{"start only", 10, 0, 10},
		{"end only", 0, 15, 15},
		{"no anchor", 0, 0, 0},
		{"negative values unusable", -3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Finding{LineStart: tt.start, LineEnd: tt.end}
			assert.Equal(t, tt.want, f.AnchorLine())
		})
	}
}
