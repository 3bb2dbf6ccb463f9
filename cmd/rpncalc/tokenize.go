package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rpncalc/internal/diagfmt"
	"rpncalc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.expr|->",
	Short: "Tokenize an arithmetic expression",
	Long:  `Tokenize breaks down an arithmetic expression into its constituent tokens`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringP("expr", "e", "", "tokenize the given expression string instead of a file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	input, err := resolveInput(expr, args)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	if input.Virtual {
		result = driver.TokenizeSource(input.Name, input.Content, maxDiagnostics)
	} else {
		result, err = driver.Tokenize(input.Path, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Bag.HasErrors() {
		return fmt.Errorf("input not tokenized")
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
