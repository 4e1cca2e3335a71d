package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// popularitySection tabulates movies per genre per three-year bin.
type popularitySection struct {
	p pipeline.PopularityResult
}

func (s *popularitySection) Name() string        { return "popularity" }
func (s *popularitySection) Description() string { return chart.PopularityTitle }

func (s *popularitySection) Analyze(in *Input) error {
	if in.Snapshot.Popularity.Empty() {
		return fmt.Errorf("popularity: %w", ErrNoData)
	}
	s.p = in.Snapshot.Popularity
	return nil
}

func (s *popularitySection) Render(w io.Writer) error {
	heading(w, chart.PopularityTitle)

	binCol := Column{Header: "Year Bin"}
	if s.p.Marker != nil {
		binCol.Color = colorMarked(s.p.Marker.Bin)
	}
	cols := []Column{binCol}
	series := make([][]int, len(s.p.Genres))
	for i, g := range s.p.Genres {
		cols = append(cols, Column{Header: g, Align: AlignRight, Color: colorCount})
		series[i] = s.p.Series(g)
	}
	cols = append(cols, Column{Header: "Total", Align: AlignRight})

	tbl := NewTable(cols...)
	for i, bin := range s.p.Bins {
		row := []string{bin}
		total := 0
		for _, ser := range series {
			row = append(row, strconv.Itoa(ser[i]))
			total += ser[i]
		}
		tbl.AddRow(append(row, strconv.Itoa(total))...)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	if m := s.p.Marker; m != nil {
		_, _ = fmt.Fprintf(w, "\n  %s %s (peak %d)\n", colorMarker.Sprint(chart.MarkerName+":"), m.Bin, m.Max)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
