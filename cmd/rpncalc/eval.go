package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"rpncalc/internal/driver"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] <file.expr|->",
	Short: "Evaluate an arithmetic expression",
	Long: `Eval runs the full pipeline: tokenize, compile to reverse Polish
notation, then evaluate on a stack machine. With --batch the file is treated
as one expression per line and lines are evaluated in parallel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringP("expr", "e", "", "evaluate the given expression string instead of a file")
	evalCmd.Flags().Bool("batch", false, "treat the file as one expression per line")
	evalCmd.Flags().Int("jobs", 0, "max parallel workers for batch processing (0=auto)")
	evalCmd.Flags().Bool("cache", false, "reuse compiled sequences from the disk cache")
	evalCmd.Flags().String("locale", "", "format results for the given BCP 47 locale (e.g. de, ru, en-US)")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	batch, err := cmd.Flags().GetBool("batch")
	if err != nil {
		return fmt.Errorf("failed to get batch flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cache, err := openCacheIfEnabled(cmd)
	if err != nil {
		return err
	}
	printValue, err := makeValuePrinter(cmd)
	if err != nil {
		return err
	}

	opts := driver.EvalOptions{
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
		Timings:        timings,
	}

	if batch {
		return runEvalBatch(cmd, args, opts, quiet, printValue)
	}

	input, err := resolveInput(expr, args)
	if err != nil {
		return err
	}

	var result *driver.EvalResult
	if input.Virtual {
		result = driver.EvalSource(input.Name, input.Content, opts)
	} else {
		result, err = driver.Eval(input.Path, opts)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	if timings && result.Timing != nil && !quiet {
		fmt.Fprint(os.Stderr, result.Timing.Summary())
	}
	if !result.OK {
		return fmt.Errorf("expression not evaluated")
	}

	printValue(result.Value)
	return nil
}

func runEvalBatch(cmd *cobra.Command, args []string, opts driver.EvalOptions, quiet bool, printValue func(float64)) error {
	if len(args) == 0 {
		return fmt.Errorf("--batch requires a file argument")
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		if cfg, cfgErr := loadConfig("."); cfgErr == nil && cfg != nil {
			jobs = cfg.Config.Eval.Jobs
		}
	}

	items, err := driver.EvalBatch(cmd.Context(), args[0], jobs, opts)
	if err != nil {
		return fmt.Errorf("batch evaluation failed: %w", err)
	}

	for _, item := range items {
		printDiagnostics(cmd, item.Result.Bag, item.Result.FileSet)
		if !item.Result.OK {
			if !quiet {
				fmt.Fprintf(os.Stderr, "%s:%d: failed: %s\n", args[0], item.Line, item.Expr)
			}
			continue
		}
		if !quiet {
			fmt.Printf("%s = ", item.Expr)
		}
		printValue(item.Result.Value)
	}

	if failed := driver.FailedCount(items); failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(items))
	}
	return nil
}

// makeValuePrinter возвращает печать результата: обычный strconv без локали,
// либо локализованный вывод через x/text.
func makeValuePrinter(cmd *cobra.Command) (func(float64), error) {
	locale, err := cmd.Flags().GetString("locale")
	if err != nil {
		return nil, fmt.Errorf("failed to get locale flag: %w", err)
	}
	if locale == "" {
		if cfg, cfgErr := loadConfig("."); cfgErr == nil && cfg != nil {
			locale = cfg.Config.Eval.Locale
		}
	}
	if locale == "" {
		return func(v float64) {
			fmt.Println(strconv.FormatFloat(v, 'g', -1, 64))
		}, nil
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	printer := message.NewPrinter(tag)
	return func(v float64) {
		printer.Printf("%v\n", number.Decimal(v))
	}, nil
}
