// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package dataset holds the immutable in-memory film table the dashboard is
// computed from.
package dataset

import (
	"sync/atomic"
)

// Movie is a single row of the dataset.
type Movie struct {
	Title    string
	Director string
	Year     int
	Rating   float64
	Gross    *float64 // nil when the source cell is empty
	Votes    int

	// Genres is aligned with Dataset.Genres(); true means the indicator is 1.
	Genres []bool
}

// HasGross reports whether the movie has a gross revenue value.
func (m Movie) HasGross() bool {
	return m.Gross != nil
}

// Dataset is an ordered, read-only collection of movies. It is built once by
// New or Parse and never mutated afterwards.
type Dataset struct {
	movies  []Movie
	genres  []string
	genreAt map[string]int
	titles  []string
	titleAt map[string]int
	minYear int
	maxYear int
}

// New builds a Dataset from movies whose Genres slices are aligned with
// genres. The inputs are copied.
func New(genres []string, movies []Movie) *Dataset {
	ds := &Dataset{
		genres:  append([]string(nil), genres...),
		genreAt: make(map[string]int, len(genres)),
		movies:  make([]Movie, len(movies)),
		titleAt: make(map[string]int, len(movies)),
	}
	for i, g := range ds.genres {
		if _, dup := ds.genreAt[g]; !dup {
			ds.genreAt[g] = i
		}
	}
	for i, m := range movies {
		m.Genres = append([]bool(nil), m.Genres...)
		if m.Gross != nil {
			g := *m.Gross
			m.Gross = &g
		}
		ds.movies[i] = m

		if _, seen := ds.titleAt[m.Title]; !seen {
			ds.titleAt[m.Title] = i
			ds.titles = append(ds.titles, m.Title)
		}
		if i == 0 || m.Year < ds.minYear {
			ds.minYear = m.Year
		}
		if i == 0 || m.Year > ds.maxYear {
			ds.maxYear = m.Year
		}
	}
	return ds
}

// Len returns the number of movies.
func (d *Dataset) Len() int {
	return len(d.movies)
}

// At returns the i-th movie. The returned value shares its Genres slice with
// the dataset and must not be modified.
func (d *Dataset) At(i int) Movie {
	return d.movies[i]
}

// Movies returns the rows in dataset order. The slice must not be modified.
func (d *Dataset) Movies() []Movie {
	return d.movies
}

// Genres returns the genre labels in column order.
func (d *Dataset) Genres() []string {
	out := make([]string, len(d.genres))
	copy(out, d.genres)
	return out
}

// GenreIndex returns the column position of a genre, or -1 if unknown.
func (d *Dataset) GenreIndex(name string) int {
	if i, ok := d.genreAt[name]; ok {
		return i
	}
	return -1
}

// HasGenre reports whether name is one of the dataset's genre columns.
func (d *Dataset) HasGenre(name string) bool {
	_, ok := d.genreAt[name]
	return ok
}

// Titles returns the unique titles in first-occurrence order.
func (d *Dataset) Titles() []string {
	out := make([]string, len(d.titles))
	copy(out, d.titles)
	return out
}

// Lookup returns the first movie with the given title.
func (d *Dataset) Lookup(title string) (Movie, bool) {
	i, ok := d.titleAt[title]
	if !ok {
		return Movie{}, false
	}
	return d.movies[i], true
}

// YearRange returns the smallest and largest release year. Both are zero for
// an empty dataset.
func (d *Dataset) YearRange() (minYear, maxYear int) {
	return d.minYear, d.maxYear
}

// MovieGenres returns the labels of the genres the movie is tagged with.
func (d *Dataset) MovieGenres(m Movie) []string {
	var out []string
	for i, on := range m.Genres {
		if on && i < len(d.genres) {
			out = append(out, d.genres[i])
		}
	}
	return out
}

// Handle is a process-wide reference to the current dataset. Readers always
// see a complete dataset; Swap publishes a replacement without touching the
// previous one.
type Handle struct {
	p atomic.Pointer[Dataset]
}

// NewHandle returns a handle pointing at ds.
func NewHandle(ds *Dataset) *Handle {
	h := &Handle{}
	h.p.Store(ds)
	return h
}

// Load returns the current dataset.
func (h *Handle) Load() *Dataset {
	return h.p.Load()
}

// Swap publishes ds and returns the dataset it replaced.
func (h *Handle) Swap(ds *Dataset) *Dataset {
	return h.p.Swap(ds)
}
