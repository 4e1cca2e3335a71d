// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package chart turns pipeline aggregates into ECharts figure specifications.
// The browser (or an exported HTML page) hands the options object to
// echarts.setOption unchanged.
package chart

import (
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Figure identifiers, also used as DOM ids by the dashboard page.
const (
	IDPopularity = "line-graph"
	IDRevenue    = "bubble-chart"
	IDRatings    = "ratings-pie-chart"
)

// NoDataTitle is the title of the placeholder drawn for an empty selection.
const NoDataTitle = "No data to display - select genres and/or movies"

// Fixed series colors.
const (
	ColorAverage  = "#cb818f"
	ColorSelected = "#92c5de"
	ColorMarker   = "red"
)

// RdBu is the shared sequential palette.
var RdBu = []string{
	"rgb(103,0,31)", "rgb(178,24,43)", "rgb(214,96,77)", "rgb(244,165,130)",
	"rgb(253,219,199)", "rgb(247,247,247)", "rgb(209,229,240)", "rgb(146,197,222)",
	"rgb(67,147,195)", "rgb(33,102,172)", "rgb(5,48,97)",
}

// options is implemented by every go-echarts chart type.
type options interface {
	Validate()
	JSON() map[string]interface{}
}

// Figure is a rendered chart: a title, an empty flag and the ECharts option
// object.
type Figure struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Empty   bool           `json:"empty"`
	Options map[string]any `json:"options"`
}

// Builder renders figures with a given palette.
type Builder struct {
	palette []string
	l       *slog.Logger
}

// NewBuilder returns a Builder. An empty palette selects RdBu.
func NewBuilder(palette []string) *Builder {
	if len(palette) == 0 {
		palette = RdBu
	}
	return &Builder{
		palette: append([]string(nil), palette...),
		l:       slog.Default().With(slog.String("module", "chart")),
	}
}

func figure(id, title string, empty bool, c options) Figure {
	c.Validate()
	return Figure{ID: id, Title: title, Empty: empty, Options: c.JSON()}
}

// Placeholder returns the "no data" figure for id.
func Placeholder(id string) Figure {
	c := charts.NewLine()
	c.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: NoDataTitle}),
		charts.WithLegendOpts(opts.Legend{Show: false}),
	)
	return figure(id, NoDataTitle, true, c)
}

func titleOpts(title string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: title, Left: "center"})
}

func legendOpts() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{Show: true, Type: "scroll", Top: "bottom"})
}
