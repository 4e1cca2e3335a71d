// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package pipeline narrows the dataset to the current selection and
// aggregates the result into the tables the dashboard charts are drawn from.
//
// Every function here is a pure function of a *dataset.Dataset and a
// Selection; nothing is cached and the dataset is never modified.
package pipeline

import (
	"slices"
	"sort"

	"github.com/davetashner/filmdash/internal/dataset"
)

// YearRange is an inclusive range of release years. The zero value means
// "not given" and is replaced by the dataset's full range.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// IsZero reports whether the range was left unset.
func (y YearRange) IsZero() bool {
	return y.From == 0 && y.To == 0
}

// Contains reports whether year lies in [From, To].
func (y YearRange) Contains(year int) bool {
	return y.From <= year && year <= y.To
}

// Selection is the set of UI choices the charts are computed from.
type Selection struct {
	Genres []string  `json:"genres,omitempty"`
	Years  YearRange `json:"years"`
	Movie  string    `json:"movie,omitempty"` // "" means no movie selected
}

// Result is the output of Filter.
type Result struct {
	// Rows are the matching movies in dataset order.
	Rows []dataset.Movie

	// Genres is the effective genre set, known genres in column order.
	Genres []string

	// Years is the effective year range after defaulting.
	Years YearRange

	// Movie is the selected movie, if the selection named one that exists.
	Movie *dataset.Movie

	// MinYear is the dataset's smallest release year, the anchor for year bins.
	MinYear int
}

// Empty reports whether no rows matched.
func (r Result) Empty() bool {
	return len(r.Rows) == 0
}

// Filter returns the rows whose release year lies in the selected range and,
// when genres or a movie narrow the effective genre set, that carry at least
// one of the effective genres. With no genre restriction, rows without any
// genre flag still match.
func Filter(ds *dataset.Dataset, sel Selection) Result {
	minYear, maxYear := ds.YearRange()
	years := sel.Years
	if years.IsZero() {
		years = YearRange{From: minYear, To: maxYear}
	}

	res := Result{
		Genres:  EffectiveGenres(ds, sel),
		Years:   years,
		MinYear: minYear,
	}
	if m, ok := ds.Lookup(sel.Movie); ok && sel.Movie != "" {
		res.Movie = &m
	}

	restricted := len(sel.Genres) > 0
	if res.Movie != nil && len(ds.MovieGenres(*res.Movie)) > 0 {
		restricted = true
	}
	cols := make([]int, 0, len(res.Genres))
	for _, g := range res.Genres {
		if i := ds.GenreIndex(g); i >= 0 {
			cols = append(cols, i)
		}
	}

	for _, m := range ds.Movies() {
		if !years.Contains(m.Year) {
			continue
		}
		if restricted && !hasAny(m, cols) {
			continue
		}
		res.Rows = append(res.Rows, m)
	}
	return res
}

// EffectiveGenres returns the genre set a selection filters on: the selected
// genres, plus the genres of the selected movie, or every genre when that
// union is empty. Known genres come first in column order; names that are
// not genre columns follow, sorted, and match no rows.
func EffectiveGenres(ds *dataset.Dataset, sel Selection) []string {
	want := make(map[string]bool, len(sel.Genres))
	for _, g := range sel.Genres {
		want[g] = true
	}
	if sel.Movie != "" {
		if m, ok := ds.Lookup(sel.Movie); ok {
			for _, g := range ds.MovieGenres(m) {
				want[g] = true
			}
		}
	}
	if len(want) == 0 {
		return ds.Genres()
	}

	out := make([]string, 0, len(want))
	for _, g := range ds.Genres() {
		if want[g] {
			out = append(out, g)
			delete(want, g)
		}
	}
	unknown := make([]string, 0, len(want))
	for g := range want {
		unknown = append(unknown, g)
	}
	sort.Strings(unknown)
	return append(out, unknown...)
}

func hasAny(m dataset.Movie, cols []int) bool {
	return slices.ContainsFunc(cols, func(i int) bool {
		return i >= 0 && i < len(m.Genres) && m.Genres[i]
	})
}
