package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	require.NoError(t, w.Print("## 분류\n**0306.17**"))

	assert.Equal(t, "## 분류\n**0306.17**\n", buf.String())
}

func TestMarkdownWriter_KeepsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	require.NoError(t, w.Print("done\n"))

	assert.Equal(t, "done\n", buf.String())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
