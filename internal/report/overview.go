package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davetashner/filmdash/internal/pipeline"
)

// overviewSection summarizes the dataset and the active selection.
type overviewSection struct {
	in     *Input
	counts []int // filtered movies per dataset genre
}

func (s *overviewSection) Name() string        { return "overview" }
func (s *overviewSection) Description() string { return "Dataset size, selection and matches per genre" }

func (s *overviewSection) Analyze(in *Input) error {
	s.in = in
	genres := in.Dataset.Genres()
	s.counts = make([]int, len(genres))
	for _, m := range in.Snapshot.Rows {
		for i, on := range m.Genres {
			if on && i < len(s.counts) {
				s.counts[i]++
			}
		}
	}
	return nil
}

func (s *overviewSection) Render(w io.Writer) error {
	heading(w, "Overview")
	ds, snap := s.in.Dataset, s.in.Snapshot
	minYear, maxYear := ds.YearRange()

	if s.in.Source != "" {
		_, _ = fmt.Fprintf(w, "  Dataset:   %s\n", s.in.Source)
	}
	_, _ = fmt.Fprintf(w, "  Movies:    %d (%d-%d, %d genres)\n", ds.Len(), minYear, maxYear, len(ds.Genres()))
	_, _ = fmt.Fprintf(w, "  Selection: %s\n", describe(snap.Selection))
	_, _ = fmt.Fprintf(w, "  Matched:   %d movies in %d-%d\n\n", snap.Matched, snap.Years.From, snap.Years.To)

	tbl := NewTable(
		Column{Header: "Genre"},
		Column{Header: "Movies", Align: AlignRight, Color: colorCount},
		Column{Header: ""},
	)
	for i, g := range ds.Genres() {
		tbl.AddRow(g, strconv.Itoa(s.counts[i]), Bar(s.counts[i], snap.Matched, 30))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func describe(sel pipeline.Selection) string {
	var parts []string
	if len(sel.Genres) > 0 {
		parts = append(parts, "genres "+strings.Join(sel.Genres, ", "))
	}
	if !sel.Years.IsZero() {
		parts = append(parts, fmt.Sprintf("years %d-%d", sel.Years.From, sel.Years.To))
	}
	if sel.Movie != "" {
		parts = append(parts, fmt.Sprintf("movie %q", sel.Movie))
	}
	if len(parts) == 0 {
		return "everything"
	}
	return strings.Join(parts, "; ")
}
