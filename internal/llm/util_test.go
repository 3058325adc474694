package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "generic code block",
			input:    "```\nhs_manual\n```",
			expected: "hs_manual",
		},
		{
			name:     "code block with language",
			input:    "```text\nweb_search\n```",
			expected: "web_search",
		},
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain answer",
			input:    "  hs_classification\n",
			expected: "hs_classification",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
