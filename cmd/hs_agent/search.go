package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/observability"
	"github.com/jonathan/hs-advisor/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Keyword search over the classification cases and decisions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchMaxResults int
	searchJSON       bool
)

func init() {
	searchCmd.Flags().IntVarP(&searchMaxResults, "max-results", "n", 0, "Number of records to return (default from config, 5)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the hits as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := contextOrBackground(cmd.Context())

	a, err := setup(ctx, false)
	if err != nil {
		return err
	}

	maxResults := a.cfg.MaxResults
	if cmd.Flags().Changed("max-results") {
		maxResults = searchMaxResults
	}

	query := strings.Join(args, " ")
	hits := a.retriever.Search(query, maxResults)

	if searchJSON {
		if hits == nil {
			hits = []types.Hit{}
		}
		return writeJSON(os.Stdout, hits)
	}
	observability.NewPrinter(os.Stdout).PrintHits(query, hits)
	return nil
}
