package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// revenueSection lists average gross and votes per IMDB rating.
type revenueSection struct {
	r pipeline.RevenueResult
}

func (s *revenueSection) Name() string        { return "revenue" }
func (s *revenueSection) Description() string { return chart.RevenueTitle }

func (s *revenueSection) Analyze(in *Input) error {
	if in.Snapshot.Revenue.Empty() {
		return fmt.Errorf("revenue: %w", ErrNoData)
	}
	s.r = in.Snapshot.Revenue
	return nil
}

func (s *revenueSection) Render(w io.Writer) error {
	heading(w, chart.RevenueTitle)

	series := []pipeline.RevenueSeries{s.r.Average}
	if s.r.Selected != nil {
		series = append(series, *s.r.Selected)
	}

	tbl := NewTable(
		Column{Header: "Series"},
		Column{Header: "Rating", Align: AlignRight},
		Column{Header: "Avg Gross", Align: AlignRight},
		Column{Header: "Avg Votes", Align: AlignRight},
		Column{Header: "Movies", Align: AlignRight},
	)
	for _, ser := range series {
		style := colorAverage.SprintFunc()
		if ser.Role == pipeline.RoleSelected {
			style = colorSelected.SprintFunc()
		}
		for _, p := range ser.Points {
			tbl.AddStyledRow(func(v string) string { return style(v) },
				ser.Label, pipeline.FormatRating(p.Rating), pipeline.FormatGross(p.Gross),
				strconv.FormatFloat(p.Votes, 'f', 0, 64), strconv.Itoa(p.Count))
		}
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
