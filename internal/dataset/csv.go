// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required CSV column names.
const (
	ColTitle    = "Series_Title"
	ColYear     = "Released_Year"
	ColRating   = "IMDB_Rating"
	ColGross    = "Gross"
	ColVotes    = "No_of_Votes"
	ColDirector = "Director"
)

// ErrMalformed is returned (wrapped) for any CSV that does not match the
// expected schema.
var ErrMalformed = errors.New("malformed dataset")

var requiredColumns = []string{ColTitle, ColYear, ColRating, ColGross, ColVotes, ColDirector}

// Load reads and parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided dataset path
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a dataset CSV from r. Every column after Gross that is not a
// required column is a 0/1 genre indicator column.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, name)
		}
	}

	required := make(map[string]bool, len(requiredColumns))
	for _, name := range requiredColumns {
		required[name] = true
	}
	grossAt := cols[ColGross]
	var genres []string
	var genreAt []int
	for i := grossAt + 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if required[name] {
			continue
		}
		genres = append(genres, name)
		genreAt = append(genreAt, i)
	}
	if len(genres) == 0 {
		return nil, fmt.Errorf("%w: no genre columns after %q", ErrMalformed, ColGross)
	}

	var movies []Movie
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		m, err := parseRecord(rec, cols, genreAt)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		movies = append(movies, m)
	}

	return New(genres, movies), nil
}

func parseRecord(rec []string, cols map[string]int, genreAt []int) (Movie, error) {
	field := func(name string) string {
		return strings.TrimSpace(rec[cols[name]])
	}

	year, err := strconv.Atoi(field(ColYear))
	if err != nil {
		return Movie{}, fmt.Errorf("%s: %q is not a year", ColYear, field(ColYear))
	}
	rating, err := strconv.ParseFloat(field(ColRating), 64)
	if err != nil {
		return Movie{}, fmt.Errorf("%s: %q is not a number", ColRating, field(ColRating))
	}
	votes, err := strconv.Atoi(strings.ReplaceAll(field(ColVotes), ",", ""))
	if err != nil {
		return Movie{}, fmt.Errorf("%s: %q is not an integer", ColVotes, field(ColVotes))
	}
	gross, err := parseGross(field(ColGross))
	if err != nil {
		return Movie{}, err
	}

	flags := make([]bool, len(genreAt))
	for i, at := range genreAt {
		v := strings.TrimSpace(rec[at])
		switch v {
		case "1", "1.0":
			flags[i] = true
		case "0", "0.0", "":
		default:
			return Movie{}, fmt.Errorf("genre indicator %q must be 0 or 1", v)
		}
	}

	return Movie{
		Title:    field(ColTitle),
		Director: field(ColDirector),
		Year:     year,
		Rating:   rating,
		Gross:    gross,
		Votes:    votes,
		Genres:   flags,
	}, nil
}

// parseGross accepts "", "123", "123.5" and "28,341,469".
func parseGross(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", ColGross, s)
	}
	return &v, nil
}
