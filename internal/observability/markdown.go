package observability

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// markdownWrap is the column at which rendered answers are wrapped
const markdownWrap = 80

// MarkdownWriter prints model answers, rendering markdown only when the
// destination is a terminal so piped output stays plain.
type MarkdownWriter struct {
	out      io.Writer
	renderer *glamour.TermRenderer
}

// NewMarkdownWriter creates a writer for out. Rendering is enabled when out
// is an *os.File attached to a terminal and the renderer can be built.
func NewMarkdownWriter(out io.Writer) *MarkdownWriter {
	w := &MarkdownWriter{out: out}
	if !IsTerminal(out) {
		return w
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWrap),
	)
	if err == nil {
		w.renderer = renderer
	}
	return w
}

// IsTerminal reports whether w is a file descriptor attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Render returns content rendered as markdown, or content unchanged when
// rendering is disabled or fails.
func (w *MarkdownWriter) Render(content string) string {
	if w.renderer == nil {
		return content
	}
	rendered, err := w.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Print writes content followed by a newline when it has none
func (w *MarkdownWriter) Print(content string) error {
	text := w.Render(content)
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	_, err := io.WriteString(w.out, text)
	return err
}
