package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the knowledge base as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing search_cases,
extract_codes, explain_codes and, when an LLM API key is configured, ask.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := mcptools.Deps{
		Searcher:   a.retriever,
		Explainer:  a.explainer,
		MaxResults: a.cfg.MaxResults,
		Logger:     a.logger,
	}
	if err := a.connectLLM(ctx); err != nil {
		a.logger.Warn("ask tool disabled", "error", err)
	} else {
		deps.Answerer = a.dispatcher
	}

	return mcptools.Serve(ctx, mcptools.NewServer(rootCmd.Name(), deps), os.Stdin, os.Stdout)
}
