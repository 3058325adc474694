// Package main provides the hs_agent command line: HS code classification
// questions, retrieval over the knowledge base, and the HTTP and MCP servers.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath   string
	rootKnowledgeDir string
	rootVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "hs_agent",
	Short: "HS code classification assistant",
	Long: `hs_agent answers customs tariff classification questions. Each question is routed to
web search, classification-case lookup or explanatory-notes analysis, and the matching
context from the knowledge directory is passed to the language model.

Configuration can be loaded from a JSON or YAML file using --config. Command-line
arguments override config file values; API keys are read from the environment or .env.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		slog.SetDefault(newLogger(rootVerbose))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVarP(&rootKnowledgeDir, "knowledge-dir", "k", "", "Directory holding the knowledge JSON documents (default \"knowledge\")")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print debug logs")
}

// newLogger writes text logs to stderr so stdout stays clean for answers
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
