package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/observability"
)

var codesCmd = &cobra.Command{
	Use:   "codes [text]",
	Short: "Extract HS codes from text",
	Long:  "Extract normalized HS codes from the arguments, or from stdin when no argument is given.",
	RunE:  runCodes,
}

var codesJSON bool

func init() {
	codesCmd.Flags().BoolVar(&codesJSON, "json", false, "Print the codes as a JSON array")

	rootCmd.AddCommand(codesCmd)
}

func runCodes(_ *cobra.Command, args []string) error {
	text, err := inputText(args, os.Stdin)
	if err != nil {
		return err
	}

	codes := hscode.ExtractCodes(text)
	if codesJSON {
		return writeJSON(os.Stdout, codes)
	}
	observability.NewPrinter(os.Stdout).PrintCodes(codes)
	return nil
}

// inputText joins args, or reads all of stdin when there are none
func inputText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
