package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/dispatch"
	"github.com/jonathan/hs-advisor/internal/observability"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive classification chat",
	Long: `Start an interactive session. Every exchange is kept as conversation context for
the next question. Commands: /reset clears the conversation, /exit quits.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var chatHistoryFile string

func init() {
	chatCmd.Flags().StringVar(&chatHistoryFile, "history-file", defaultHistoryFile(), "File keeping input history between sessions (empty disables)")

	rootCmd.AddCommand(chatCmd)
}

func defaultHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hs_agent", "chat_history")
}

// Chat prompts and labels
const (
	chatPrompt     = "hs> "
	userLabel      = "사용자"
	assistantLabel = "답변"
)

// conversation accumulates exchanges as the history context of the next question
type conversation struct {
	turns []string
}

func (c *conversation) add(question, answer string) {
	c.turns = append(c.turns, fmt.Sprintf("%s: %s\n%s: %s", userLabel, question, assistantLabel, answer))
}

func (c *conversation) reset() {
	c.turns = nil
}

func (c *conversation) String() string {
	return strings.Join(c.turns, "\n")
}

// chatSession ties the dispatcher to an output and a conversation
type chatSession struct {
	dispatcher *dispatch.Dispatcher
	out        *observability.MarkdownWriter
	errOut     io.Writer
	conv       conversation
}

// handle processes one input line and reports whether the session continues
func (s *chatSession) handle(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return true
	case input == "/exit" || input == "/quit":
		return false
	case input == "/reset":
		s.conv.reset()
		fmt.Fprintln(s.errOut, "[conversation cleared]")
		return true
	case strings.HasPrefix(input, "/"):
		fmt.Fprintf(s.errOut, "unknown command %s (use /reset or /exit)\n", input)
		return true
	}

	answer, err := s.dispatcher.Answer(ctx, input, s.conv.String())
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return true
	}

	fmt.Fprintf(s.errOut, "[%s]\n", answer.Intent)
	if err := s.out.Print(answer.Text); err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	s.conv.add(input, answer.Text)
	return true
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := contextOrBackground(cmd.Context())

	a, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()
	loadInputHistory(line, chatHistoryFile)
	defer saveInputHistory(line, chatHistoryFile)

	session := &chatSession{
		dispatcher: a.dispatcher,
		out:        observability.NewMarkdownWriter(os.Stdout),
		errOut:     os.Stderr,
	}

	fmt.Fprintln(os.Stderr, "HS code assistant. /reset clears the conversation, /exit quits.")
	for {
		input, err := line.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !session.handle(ctx, input) {
			return nil
		}
	}
}

func loadInputHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
}

func saveInputHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
