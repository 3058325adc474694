package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/observability"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code or text...]",
	Short: "Look up explanatory notes for HS codes",
	Long: `Extract HS codes from the arguments (or stdin) and print the general rules with the
section, heading and subheading explanations of each code.`,
	RunE: runExplain,
}

var (
	explainCoverage bool
	explainJSON     bool
)

func init() {
	explainCmd.Flags().BoolVar(&explainCoverage, "coverage", false, "Only show which explanation levels were found")
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "Print the lookups as JSON")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	text, err := inputText(args, os.Stdin)
	if err != nil {
		return err
	}
	codes := hscode.ExtractCodes(text)
	if len(codes) == 0 {
		return fmt.Errorf("no HS codes found in input")
	}

	ctx := contextOrBackground(cmd.Context())
	a, err := setup(ctx, false)
	if err != nil {
		return err
	}

	lookups := make([]hscode.Lookup, 0, len(codes))
	for _, code := range codes {
		lookups = append(lookups, a.explainer.Lookup(code))
	}

	switch {
	case explainJSON:
		return writeJSON(os.Stdout, lookups)
	case explainCoverage:
		observability.NewPrinter(os.Stdout).PrintLookups(lookups)
		return nil
	default:
		_, err := fmt.Fprintln(os.Stdout, a.explainer.Explanations(codes))
		return err
	}
}
