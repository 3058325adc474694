package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/config"
	"github.com/jonathan/hs-advisor/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token [client-id]",
	Short: "Issue an API bearer token for a client",
	Long: `Sign a JWT for the given client ID with the configured secret (JWT_SECRET or
server.jwt_secret). The token expires after JWT_EXPIRATION_HOURS (default 24).`,
	Args: cobra.ExactArgs(1),
	RunE: runIssueToken,
}

func init() {
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := issueToken(cfg.Server.JWTSecret, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, token)
	return err
}

func issueToken(secret, clientID string) (string, error) {
	jwtCfg, err := config.NewJWTConfigWithSecret(secret)
	if err != nil {
		return "", err
	}
	return server.NewJWTService(jwtCfg).GenerateToken(clientID)
}
