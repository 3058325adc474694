package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/hs-advisor/internal/dispatch"
	"github.com/jonathan/hs-advisor/internal/observability"
	"github.com/jonathan/hs-advisor/internal/types"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one classification question",
	Long: `Classify the question as web_search, hs_classification or hs_manual, gather the
matching context and print the model's answer. Use --intent to skip classification.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askIntent  string
	askHistory string
	askJSON    bool
)

func init() {
	askCmd.Flags().StringVar(&askIntent, "intent", "", "Force a strategy: web_search, hs_classification or hs_manual")
	askCmd.Flags().StringVar(&askHistory, "history", "", "Earlier conversation passed to the model as context")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the answer as JSON")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	var intent types.Intent
	if askIntent != "" {
		parsed, ok := types.ParseIntent(askIntent)
		if !ok {
			return fmt.Errorf("invalid --intent %q (want web_search, hs_classification or hs_manual)", askIntent)
		}
		intent = parsed
	}

	ctx := contextOrBackground(cmd.Context())

	a, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	answer, err := respond(ctx, a.dispatcher, intent, question, askHistory)
	if err != nil {
		return err
	}

	if askJSON {
		return writeJSON(os.Stdout, answer)
	}
	a.logger.Debug("answered", "intent", answer.Intent)
	return observability.NewMarkdownWriter(os.Stdout).Print(answer.Text)
}

// respond routes to intent when set, otherwise classifies first
func respond(ctx context.Context, d *dispatch.Dispatcher, intent types.Intent, question, history string) (dispatch.Answer, error) {
	if intent != "" {
		return d.Route(ctx, intent, question, history)
	}
	return d.Answer(ctx, question, history)
}
