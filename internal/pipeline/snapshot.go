package pipeline

import (
	"github.com/davetashner/filmdash/internal/dataset"
)

// Snapshot bundles the three aggregates for one selection, computed from a
// single filter pass.
type Snapshot struct {
	Selection  Selection        `json:"selection"`
	Genres     []string         `json:"effective_genres"`
	Years      YearRange        `json:"effective_years"`
	Matched    int              `json:"matched"`
	Rows       []dataset.Movie  `json:"-"`
	Popularity PopularityResult `json:"popularity"`
	Revenue    RevenueResult    `json:"revenue"`
	Ratings    RatingResult     `json:"ratings"`
}

// Compute filters ds once and derives every aggregate from the result.
func Compute(ds *dataset.Dataset, sel Selection, bins RatingBins) *Snapshot {
	res := Filter(ds, sel)
	return &Snapshot{
		Selection:  sel,
		Genres:     res.Genres,
		Years:      res.Years,
		Matched:    len(res.Rows),
		Rows:       res.Rows,
		Popularity: PopularityOf(ds, res),
		Revenue:    RevenueOf(res),
		Ratings:    RatingsOf(res, bins),
	}
}
