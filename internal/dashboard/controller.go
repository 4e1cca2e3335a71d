// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package dashboard wires selection changes to chart recomputation.
//
// A Controller knows which charts depend on which inputs. A Session holds one
// user's selection and applies events to it one at a time, recomputing only
// the dependent charts.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// Input names a UI control whose change triggers recomputation.
type Input string

// Inputs.
const (
	InputGenres Input = "genres"
	InputYears  Input = "years"
	InputMovie  Input = "movie"
	InputMode   Input = "mode"
)

// Validation errors surfaced at the transport boundaries.
var (
	ErrUnknownInput = errors.New("unknown input")
	ErrUnknownMovie = errors.New("unknown movie")
	ErrUnknownGenre = errors.New("unknown genre")
	ErrYearRange    = errors.New("invalid year range")
)

// Handler recomputes one chart from the dataset and a selection.
type Handler func(ds *dataset.Dataset, sel pipeline.Selection) chart.Figure

type registration struct {
	id      string
	handler Handler
	inputs  []Input
}

// Controller is the registry of charts and the inputs they depend on. It
// holds no selection state and is safe for concurrent use once built.
type Controller struct {
	charts []registration
	l      *slog.Logger
}

// NewController returns a controller with the three dashboard charts
// registered against the genre, year and movie inputs.
func NewController(b *chart.Builder, bins pipeline.RatingBins) *Controller {
	c := &Controller{l: slog.Default().With(slog.String("module", "dashboard"))}
	all := []Input{InputGenres, InputYears, InputMovie}

	c.Register(chart.IDPopularity, func(ds *dataset.Dataset, sel pipeline.Selection) chart.Figure {
		return b.Popularity(pipeline.Popularity(ds, sel))
	}, all...)
	c.Register(chart.IDRevenue, func(ds *dataset.Dataset, sel pipeline.Selection) chart.Figure {
		return b.Revenue(pipeline.Revenue(ds, sel))
	}, all...)
	c.Register(chart.IDRatings, func(ds *dataset.Dataset, sel pipeline.Selection) chart.Figure {
		return b.Ratings(pipeline.Ratings(ds, sel, bins))
	}, all...)
	return c
}

// Register adds a chart. It panics if id is already registered.
func (c *Controller) Register(id string, h Handler, inputs ...Input) {
	for _, r := range c.charts {
		if r.id == id {
			panic(fmt.Sprintf("chart already registered: %s", id))
		}
	}
	c.charts = append(c.charts, registration{id: id, handler: h, inputs: inputs})
}

// Charts returns the registered chart ids in registration order.
func (c *Controller) Charts() []string {
	out := make([]string, len(c.charts))
	for i, r := range c.charts {
		out[i] = r.id
	}
	return out
}

// Dependents returns the ids of the charts recomputed when in changes. A mode
// change clears the movie and genre selections, so it reaches every chart
// that depends on either.
func (c *Controller) Dependents(in Input) []string {
	var out []string
	for _, r := range c.charts {
		hit := slices.Contains(r.inputs, in)
		if in == InputMode {
			hit = slices.Contains(r.inputs, InputMovie) || slices.Contains(r.inputs, InputGenres)
		}
		if hit {
			out = append(out, r.id)
		}
	}
	return out
}

// Render recomputes every registered chart for sel.
func (c *Controller) Render(ds *dataset.Dataset, sel pipeline.Selection) []chart.Figure {
	return c.render(ds, sel, c.Charts())
}

func (c *Controller) render(ds *dataset.Dataset, sel pipeline.Selection, ids []string) []chart.Figure {
	out := make([]chart.Figure, 0, len(ids))
	for _, r := range c.charts {
		if !slices.Contains(ids, r.id) {
			continue
		}
		out = append(out, r.handler(ds, sel))
	}
	c.l.Debug("rendered charts", slog.Int("count", len(out)), slog.Any("genres", sel.Genres),
		slog.Any("years", sel.Years), slog.String("movie", sel.Movie))
	return out
}

// Validate checks a selection against ds: every genre must be a genre column,
// the movie (if any) must exist, and a given year range must be ordered.
func Validate(ds *dataset.Dataset, sel pipeline.Selection) error {
	for _, g := range sel.Genres {
		if !ds.HasGenre(g) {
			return fmt.Errorf("%w: %q", ErrUnknownGenre, g)
		}
	}
	if sel.Movie != "" {
		if _, ok := ds.Lookup(sel.Movie); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMovie, sel.Movie)
		}
	}
	if !sel.Years.IsZero() && sel.Years.From > sel.Years.To {
		return fmt.Errorf("%w: %d > %d", ErrYearRange, sel.Years.From, sel.Years.To)
	}
	return nil
}
