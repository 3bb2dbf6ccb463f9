package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rpncalc/internal/diag"
	"rpncalc/internal/diagfmt"
	"rpncalc/internal/source"
	"rpncalc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rpncalc",
	Short: "Arithmetic expression compiler and RPN evaluator",
	Long:  `rpncalc compiles infix arithmetic expressions into reverse Polish notation and evaluates them on a stack machine`,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColorMode выбирает режим цвета: явный флаг сильнее rpncalc.toml,
// конфиг сильнее значения по умолчанию.
func resolveColorMode(flagValue string, flagChanged bool, cfg *configFile) string {
	if flagChanged {
		return flagValue
	}
	if cfg != nil && cfg.Config.Output.Color != "" {
		return cfg.Config.Output.Color
	}
	return flagValue
}

// resolveDiagFormat возвращает формат вывода диагностик из rpncalc.toml.
func resolveDiagFormat(cfg *configFile) string {
	if cfg != nil && cfg.Config.Output.Format != "" {
		return cfg.Config.Output.Format
	}
	return "pretty"
}

// useColor resolves the color tri-state (flag, then config) against the terminal.
func useColor(cmd *cobra.Command) bool {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return false
	}
	cfg, _ := loadConfig(".")
	mode := resolveColorMode(colorFlag, flags.Changed("color"), cfg)
	return mode == "on" || (mode == "auto" && isTerminal(os.Stderr))
}

// printDiagnostics выводит диагностики в stderr, если они есть.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if !bag.HasErrors() && !bag.HasWarnings() {
		return
	}
	bag.Sort()

	cfg, _ := loadConfig(".")
	if resolveDiagFormat(cfg) == "json" {
		_ = diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd),
		Context:   true,
		ShowNotes: true,
	})
}
