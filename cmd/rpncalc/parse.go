package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rpncalc/internal/diagfmt"
	"rpncalc/internal/driver"
	"rpncalc/internal/rpn"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.expr|->",
	Short: "Parse an expression and output its reverse Polish notation",
	Long:  `Parse compiles an infix arithmetic expression into a postfix (RPN) token sequence without evaluating it`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "line", "output format (line|pretty|json)")
	parseCmd.Flags().StringP("expr", "e", "", "parse the given expression string instead of a file")
	parseCmd.Flags().Bool("cache", false, "reuse compiled sequences from the disk cache")
}

func runParse(cmd *cobra.Command, args []string) error {
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

	cache, err := openCacheIfEnabled(cmd)
	if err != nil {
		return err
	}

	input, err := resolveInput(expr, args)
	if err != nil {
		return err
	}

	var result *driver.ParseResult
	if input.Virtual {
		result = driver.ParseSource(input.Name, input.Content, maxDiagnostics, cache)
	} else {
		result, err = driver.Parse(input.Path, maxDiagnostics, cache)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if !result.OK {
		return fmt.Errorf("expression not recognized")
	}
	if err := result.Seq.Wellformed(); err != nil {
		return fmt.Errorf("internal error: %w", err)
	}

	switch format {
	case "line":
		return rpn.Format(os.Stdout, result.Seq)
	case "pretty":
		return diagfmt.FormatSequencePretty(os.Stdout, result.Seq, result.FileSet)
	case "json":
		return diagfmt.FormatSequenceJSON(os.Stdout, result.Seq)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// openCacheIfEnabled совмещает флаг --cache с секцией [cache] конфига.
func openCacheIfEnabled(cmd *cobra.Command) (*driver.SeqCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return nil, err
	}
	dir := ""
	if cfg != nil {
		enabled = enabled || cfg.Config.Cache.Enabled
		dir = cfg.Config.Cache.Dir
	}
	if !enabled {
		return nil, nil
	}
	if dir != "" {
		return driver.OpenSeqCacheAt(dir)
	}
	return driver.OpenSeqCache("rpncalc")
}
