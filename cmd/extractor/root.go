package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "extractor",
	Short: "Extract transactions and account metadata from bank statements",
	Long: `extractor converts bank-statement exports (CSV, Excel) into a canonical
JSON or CSV artifact: normalized transactions plus account metadata with an
explicit response code.

Examples:
  extractor process statement.csv
  extractor process --format csv --out transactions.csv statement.xlsx
  extractor process --mode bank --marker hitachi scans/*.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}
