package chart

import (
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davetashner/filmdash/internal/pipeline"
)

// Popularity chart labels.
const (
	PopularityTitle = "Genre Popularity Over Three-Year Bins"
	MarkerName      = "Release Year Bin"
)

// Popularity renders the stacked-area genre chart. A selected movie adds a
// dashed vertical line over its release-year bin.
func (b *Builder) Popularity(p pipeline.PopularityResult) Figure {
	if p.Empty() {
		return Placeholder(IDPopularity)
	}

	c := charts.NewLine()
	c.SetGlobalOptions(
		titleOpts(PopularityTitle),
		legendOpts(),
		charts.WithColorsOpts(opts.Colors(b.palette)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year Bin", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Movies", Type: "value"}),
	)
	c.SetXAxis(p.Bins)

	for _, g := range p.Genres {
		counts := p.Series(g)
		data := make([]opts.LineData, len(counts))
		for i, n := range counts {
			data[i] = opts.LineData{Value: n}
		}
		c.AddSeries(g, data,
			charts.WithLineChartOpts(opts.LineChart{Stack: "genres"}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.8}),
		)
	}

	if m := p.Marker; m != nil {
		c.AddSeries(MarkerName, []opts.LineData{
			{Value: []interface{}{m.Bin, 0}},
			{Value: []interface{}{m.Bin, m.Height}},
		},
			charts.WithLineStyleOpts(opts.LineStyle{Color: ColorMarker, Width: 2, Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorMarker}),
		)
		b.l.Debug("release-year marker", slog.String("bin", m.Bin), slog.Int("height", m.Height))
	}

	return figure(IDPopularity, PopularityTitle, false, c)
}
