package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	filmlog "github.com/davetashner/filmdash/internal/log"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
	logFormat  string
)

// rootCmd is the base command for filmdash.
var rootCmd = &cobra.Command{
	Use:   "filmdash",
	Short: "Explore a movie dataset by genre, year and title",
	Long: `Filmdash is an interactive dashboard over a CSV of movies. Filter by genre,
release-year range or a single movie and see how genre popularity, gross
revenue and ratings change. The same aggregates are available as exports,
a terminal report and MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		if err := filmlog.SetupWith(filmlog.Options{Verbose: verbose, Quiet: quiet, Format: logFormat}); err != nil {
			return exitError(ExitInvalidArgs, "filmdash: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./.filmdash.yaml or ./.filmdash.toml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", filmlog.FormatText, "log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
