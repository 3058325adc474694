package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the loaded knowledge directory",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := contextOrBackground(cmd.Context())
	a, err := setup(ctx, false)
	if err != nil {
		return err
	}

	counts, order := a.sourceCounts()
	observability.NewPrinter(os.Stdout).PrintKnowledgeSummary(counts, order,
		a.index.Len(), len(a.knowledge.Reference), len(a.knowledge.GeneralRules))
	return nil
}
