// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"sort"

	"github.com/davetashner/filmdash/internal/dataset"
)

// MarkerScale is the multiple of the bin maximum the release-year marker is
// drawn up to.
const MarkerScale = 4

// PopularityRow is one (bin, genre) cell of the long-form popularity table.
type PopularityRow struct {
	Bin   string `json:"bin"`
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Marker locates the selected movie's release-year bin on the popularity
// chart.
type Marker struct {
	Bin    string `json:"bin"`
	Max    int    `json:"max"`
	Height int    `json:"height"`
}

// PopularityResult is the genre-popularity table: one row per bin and
// effective genre, bins ascending, genres in column order.
type PopularityResult struct {
	Rows   []PopularityRow `json:"rows"`
	Bins   []string        `json:"bins"`
	Genres []string        `json:"genres"`
	Marker *Marker         `json:"marker,omitempty"`
}

// Empty reports whether there is nothing to plot.
func (p PopularityResult) Empty() bool {
	return len(p.Rows) == 0
}

// Series returns the counts for one genre in bin order.
func (p PopularityResult) Series(genre string) []int {
	out := make([]int, 0, len(p.Bins))
	for _, r := range p.Rows {
		if r.Genre == genre {
			out = append(out, r.Count)
		}
	}
	return out
}

// Popularity filters ds by sel and counts, per three-year bin, how many
// movies carry each effective genre. A movie tagged with several genres
// counts once for each.
func Popularity(ds *dataset.Dataset, sel Selection) PopularityResult {
	return PopularityOf(ds, Filter(ds, sel))
}

// PopularityOf aggregates an existing filter result.
func PopularityOf(ds *dataset.Dataset, res Result) PopularityResult {
	out := PopularityResult{Genres: res.Genres}
	if res.Empty() {
		return out
	}

	cols := make([]int, len(res.Genres))
	for i, g := range res.Genres {
		cols[i] = ds.GenreIndex(g)
	}

	counts := make(map[int][]int) // bin start -> per-genre counts
	for _, m := range res.Rows {
		if !hasAny(m, cols) {
			continue
		}
		start := YearBinStart(m.Year, res.MinYear)
		c, ok := counts[start]
		if !ok {
			c = make([]int, len(cols))
			counts[start] = c
		}
		for i, col := range cols {
			if col >= 0 && col < len(m.Genres) && m.Genres[col] {
				c[i]++
			}
		}
	}

	starts := make([]int, 0, len(counts))
	for s := range counts {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	for _, s := range starts {
		bin := YearBin(s, res.MinYear)
		out.Bins = append(out.Bins, bin)
		for i, g := range res.Genres {
			out.Rows = append(out.Rows, PopularityRow{Bin: bin, Genre: g, Count: counts[s][i]})
		}
	}

	if res.Movie != nil {
		out.Marker = markerFor(out, YearBin(res.Movie.Year, res.MinYear))
	}
	return out
}

func markerFor(p PopularityResult, bin string) *Marker {
	found := false
	highest := 0
	for _, r := range p.Rows {
		if r.Bin != bin {
			continue
		}
		if !found || r.Count > highest {
			highest = r.Count
		}
		found = true
	}
	if !found {
		return nil
	}
	return &Marker{Bin: bin, Max: highest, Height: highest * MarkerScale}
}
