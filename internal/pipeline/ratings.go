// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/davetashner/filmdash/internal/dataset"
)

// RatingSlice is one slice of the rating-distribution pie.
type RatingSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RatingResult is the rating distribution. In single-movie mode it holds one
// slice labelled with the movie's rating; otherwise one slice per non-empty
// rating bin, in bin order.
type RatingResult struct {
	Slices []RatingSlice `json:"slices"`
	Single bool          `json:"single"`
	Rating float64       `json:"rating,omitempty"` // the movie's rating when Single
	Total  int           `json:"total"`
}

// Empty reports whether there is nothing to plot.
func (r RatingResult) Empty() bool {
	return len(r.Slices) == 0
}

// Ratings computes the rating distribution for sel. A selected movie
// short-circuits the filters and yields a single slice.
func Ratings(ds *dataset.Dataset, sel Selection, bins RatingBins) RatingResult {
	if sel.Movie != "" {
		if m, ok := ds.Lookup(sel.Movie); ok {
			return singleRating(m)
		}
	}
	return RatingsOf(Filter(ds, sel), bins)
}

// RatingsOf bins an existing filter result. When the result carries a
// selected movie, the single-movie slice is returned instead.
func RatingsOf(res Result, bins RatingBins) RatingResult {
	if res.Movie != nil {
		return singleRating(*res.Movie)
	}
	if bins.Len() < 2 {
		bins = DefaultRatingBins()
	}

	counts := make([]int, bins.Len())
	for _, m := range res.Rows {
		counts[bins.Index(m.Rating)]++
	}

	var out RatingResult
	for i, c := range counts {
		if c == 0 {
			continue
		}
		out.Slices = append(out.Slices, RatingSlice{Label: bins.Label(i), Count: c})
		out.Total += c
	}
	return out
}

func singleRating(m dataset.Movie) RatingResult {
	return RatingResult{
		Slices: []RatingSlice{{Label: FormatRating(m.Rating) + " Rating", Count: 1}},
		Single: true,
		Rating: m.Rating,
		Total:  1,
	}
}
