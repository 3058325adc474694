package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/config"
	"github.com/jonathan/hs-advisor/internal/server"
	"github.com/jonathan/hs-advisor/internal/server/ratelimit"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing search, code extraction, explanations and question
answering. Requests need a bearer token from issue-token when a JWT secret is configured.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config, \":8080\")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	services := server.Services{Searcher: a.retriever, Explainer: a.explainer}
	if err := a.connectLLM(ctx); err != nil {
		a.logger.Warn("question answering disabled", "error", err)
	} else {
		services.Answerer = a.dispatcher
	}

	srvCfg, err := serverConfig(a.cfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		srvCfg.Addr = serveAddr
	}
	srvCfg.Logger = a.logger

	return server.New(services, srvCfg).Start(ctx)
}

// serverConfig maps the file configuration onto the server's
func serverConfig(cfg config.Config) (server.Config, error) {
	out := server.Config{
		Addr:        cfg.Server.Addr,
		MaxResults:  cfg.MaxResults,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   ratelimit.NewConfig(cfg.Server.RequestsPerMinute, cfg.Server.Burst),
	}
	if cfg.Server.JWTSecret != "" {
		jwtCfg, err := config.NewJWTConfigWithSecret(cfg.Server.JWTSecret)
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid JWT configuration: %w", err)
		}
		out.JWT = jwtCfg
	}
	return out, nil
}
