// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/davetashner/filmdash/internal/dataset"
)

// AverageLabel names the aggregate series of the revenue chart.
const AverageLabel = "Average"

// SeriesRole distinguishes the two revenue series. Colors and legends key on
// the role, never on the label, so a movie titled "Average" cannot be confused
// with the aggregate series.
type SeriesRole string

// Series roles.
const (
	RoleAverage  SeriesRole = "average"
	RoleSelected SeriesRole = "selected"
)

// RevenuePoint is one bubble: a rating with its mean gross and vote count.
type RevenuePoint struct {
	Rating float64  `json:"rating"`
	Gross  *float64 `json:"gross"` // nil when no movie in the group has a gross
	Votes  float64  `json:"votes"`
	Count  int      `json:"count"`
}

// RevenueSeries is a labelled list of points.
type RevenueSeries struct {
	Label  string         `json:"label"`
	Role   SeriesRole     `json:"role"`
	Points []RevenuePoint `json:"points"`
}

// RevenueResult holds the aggregate series and, when a movie is selected, the
// movie's own point.
type RevenueResult struct {
	Average  RevenueSeries  `json:"average"`
	Selected *RevenueSeries `json:"selected,omitempty"`
}

// Empty reports whether neither series has points.
func (r RevenueResult) Empty() bool {
	return len(r.Average.Points) == 0 && r.Selected == nil
}

// Revenue groups the filtered rows by exact rating and averages gross revenue
// and vote count per rating.
func Revenue(ds *dataset.Dataset, sel Selection) RevenueResult {
	return RevenueOf(Filter(ds, sel))
}

// RevenueOf aggregates an existing filter result.
func RevenueOf(res Result) RevenueResult {
	out := RevenueResult{
		Average: RevenueSeries{Label: AverageLabel, Role: RoleAverage},
	}

	type group struct {
		gross []float64
		votes []float64
		count int
	}
	groups := make(map[float64]*group)
	for _, m := range res.Rows {
		g, ok := groups[m.Rating]
		if !ok {
			g = &group{}
			groups[m.Rating] = g
		}
		g.count++
		g.votes = append(g.votes, float64(m.Votes))
		if m.Gross != nil {
			g.gross = append(g.gross, *m.Gross)
		}
	}

	ratings := make([]float64, 0, len(groups))
	for r := range groups {
		ratings = append(ratings, r)
	}
	sort.Float64s(ratings)

	for _, r := range ratings {
		g := groups[r]
		p := RevenuePoint{
			Rating: r,
			Votes:  stat.Mean(g.votes, nil),
			Count:  g.count,
		}
		if len(g.gross) > 0 {
			mean := stat.Mean(g.gross, nil)
			p.Gross = &mean
		}
		out.Average.Points = append(out.Average.Points, p)
	}

	if res.Movie != nil {
		m := res.Movie
		p := RevenuePoint{Rating: m.Rating, Votes: float64(m.Votes), Count: 1}
		if m.Gross != nil {
			g := *m.Gross
			p.Gross = &g
		}
		out.Selected = &RevenueSeries{
			Label:  m.Title,
			Role:   RoleSelected,
			Points: []RevenuePoint{p},
		}
	}
	return out
}
