package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/report"
)

// Report-specific flag values.
var (
	reportData     string
	reportSections string
	reportOutput   string
	reportJSON     bool
	reportSel      selectionFlags
)

// reportCmd prints the dashboard aggregates as terminal tables.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard aggregates as a terminal report",
	Long: `Compute the dashboard aggregates for a selection and print them as aligned,
colored tables: an overview, genre popularity per release-year bin, average
gross per rating, and the rating distribution.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportData, "data", "d", config.DefaultDataset, "CSV dataset path")
	reportCmd.Flags().StringVar(&reportSections, "sections", "", "comma-separated list of report sections to include")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit machine-readable JSON")
	reportSel.register(reportCmd.Flags())
}

func runReport(cmd *cobra.Command, _ []string) error {
	var sections []string
	for _, s := range strings.Split(reportSections, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	if unknown := report.UnknownSections(sections); len(unknown) > 0 {
		return exitError(ExitInvalidArgs, "filmdash: unknown sections: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(report.List(), ", "))
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		s.Dataset = reportData
	}
	bins, err := ratingBins(s)
	if err != nil {
		return err
	}
	ds, err := loadDataset(s.Dataset)
	if err != nil {
		return err
	}
	sel, err := reportSel.selection(ds)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if reportOutput != "" {
		f, createErr := os.Create(reportOutput) //nolint:gosec // user-specified output path
		if createErr != nil {
			return fmt.Errorf("filmdash: cannot create output file %q (%v)", reportOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	in := report.NewInput(ds, s.Dataset, sel, bins)
	render := report.Render
	if reportJSON {
		render = report.RenderJSON
	}
	if err := render(in, sections, w); err != nil {
		return fmt.Errorf("filmdash: rendering failed (%v)", err)
	}

	slog.Debug("report complete", "matched", in.Snapshot.Matched)
	return nil
}
