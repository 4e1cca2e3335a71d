package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/output"
)

// Export-specific flag values.
var (
	exportData   string
	exportFormat string
	exportOutput string
	exportSel    selectionFlags
)

// exportCmd writes one selection's aggregates in a chosen format.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard aggregates for a selection",
	Long: `Compute the genre popularity, revenue and rating aggregates for a selection
and write them as JSON, Markdown, a self-contained HTML dashboard, or a
SQLite database.

Examples:
  filmdash export --genre Drama --years 1990:2005
  filmdash export --movie "Heat" --format markdown
  filmdash export --format sqlite -o films.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportData, "data", "d", config.DefaultDataset, "CSV dataset path")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", config.DefaultFormat, "output format: json, markdown, html, sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default: stdout)")
	exportSel.register(exportCmd.Flags())
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		s.Dataset = exportData
	}
	if cmd.Flags().Changed("format") {
		s.Format = exportFormat
	}

	formatter, err := output.GetFormatter(s.Format)
	if err != nil {
		return exitError(ExitInvalidArgs, "filmdash: %v", err)
	}
	bins, err := ratingBins(s)
	if err != nil {
		return err
	}
	ds, err := loadDataset(s.Dataset)
	if err != nil {
		return err
	}
	sel, err := exportSel.selection(ds)
	if err != nil {
		return err
	}

	e := output.NewExport(ds, s.Dataset, sel, bins, chartBuilder(s))
	e.AssetsHost = s.AssetsHost

	if exportOutput == "" {
		return writeExport(formatter, e, cmd.OutOrStdout())
	}
	if ff, ok := formatter.(output.FileFormatter); ok {
		if err := ff.FormatFile(e, exportOutput); err != nil {
			return fmt.Errorf("filmdash: export failed (%v)", err)
		}
	} else {
		f, err := os.Create(exportOutput) //nolint:gosec // user-specified output path
		if err != nil {
			return fmt.Errorf("filmdash: cannot create output file %q (%v)", exportOutput, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		if err := writeExport(formatter, e, f); err != nil {
			return err
		}
	}
	slog.Info("export complete", "format", formatter.Name(), "output", exportOutput, "matched", e.Snapshot.Matched)
	return nil
}

func writeExport(f output.Formatter, e *output.Export, w io.Writer) error {
	if err := f.Format(e, w); err != nil {
		return fmt.Errorf("filmdash: export failed (%v)", err)
	}
	return nil
}
