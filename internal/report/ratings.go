package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// ratingsSection shows the rating distribution, or a single movie's rating.
type ratingsSection struct {
	r pipeline.RatingResult
}

func (s *ratingsSection) Name() string        { return "ratings" }
func (s *ratingsSection) Description() string { return chart.RatingsTitle }

func (s *ratingsSection) Analyze(in *Input) error {
	if in.Snapshot.Ratings.Empty() {
		return fmt.Errorf("ratings: %w", ErrNoData)
	}
	s.r = in.Snapshot.Ratings
	return nil
}

func (s *ratingsSection) Render(w io.Writer) error {
	heading(w, chart.RatingsTitleFor(s.r))

	tbl := NewTable(
		Column{Header: "Rating"},
		Column{Header: "Movies", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
		Column{Header: ""},
	)
	for _, sl := range s.r.Slices {
		pct := 100 * float64(sl.Count) / float64(s.r.Total)
		tbl.AddRow(sl.Label, strconv.Itoa(sl.Count), strconv.FormatFloat(pct, 'f', 1, 64)+"%",
			Bar(sl.Count, s.r.Total, 30))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
