package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// yearRange is a pflag.Value for FROM:TO. Either side may be omitted and is
// then filled from the dataset; a single year Y means Y:Y.
type yearRange struct {
	from, to int
	set      bool
}

func (y *yearRange) String() string {
	if !y.set {
		return ""
	}
	var b strings.Builder
	if y.from != 0 {
		b.WriteString(strconv.Itoa(y.from))
	}
	b.WriteByte(':')
	if y.to != 0 {
		b.WriteString(strconv.Itoa(y.to))
	}
	return b.String()
}

func (y *yearRange) Set(s string) error {
	s = strings.TrimSpace(s)
	from, to, found := strings.Cut(s, ":")
	if !found {
		to = from
	}
	parse := func(v string) (int, error) {
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%q is not a year", v)
		}
		return n, nil
	}
	f, err := parse(from)
	if err != nil {
		return err
	}
	t, err := parse(to)
	if err != nil {
		return err
	}
	if f == 0 && t == 0 {
		return fmt.Errorf("expected FROM:TO, got %q", s)
	}
	if f != 0 && t != 0 && f > t {
		return fmt.Errorf("%w: %d > %d", dashboard.ErrYearRange, f, t)
	}
	y.from, y.to, y.set = f, t, true
	return nil
}

func (y *yearRange) Type() string { return "FROM:TO" }

// resolve fills omitted bounds from ds.
func (y *yearRange) resolve(ds *dataset.Dataset) pipeline.YearRange {
	if !y.set {
		return pipeline.YearRange{}
	}
	lo, hi := ds.YearRange()
	r := pipeline.YearRange{From: lo, To: hi}
	if y.from != 0 {
		r.From = y.from
	}
	if y.to != 0 {
		r.To = y.to
	}
	return r
}

// selectionFlags are the filter flags shared by export and report.
type selectionFlags struct {
	genres []string
	years  yearRange
	movie  string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.genres, "genre", "g", nil, "genre to include (repeatable; default: every genre)")
	fs.Var(&f.years, "years", "release-year range, inclusive (e.g. 1990:2005, 1990:, :1970)")
	fs.StringVarP(&f.movie, "movie", "m", "", "movie title to focus on")
}

func (f *selectionFlags) reset() {
	*f = selectionFlags{}
}

// selection builds and validates the selection against ds.
func (f *selectionFlags) selection(ds *dataset.Dataset) (pipeline.Selection, error) {
	sel := pipeline.Selection{
		Genres: append([]string(nil), f.genres...),
		Years:  f.years.resolve(ds),
		Movie:  f.movie,
	}
	if err := dashboard.Validate(ds, sel); err != nil {
		return pipeline.Selection{}, exitError(ExitInvalidArgs, "filmdash: %v", err)
	}
	return sel, nil
}
