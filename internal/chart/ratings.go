package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davetashner/filmdash/internal/pipeline"
)

// RatingsTitle is the aggregate pie's title; a single movie's pie is titled
// with its rating instead.
const RatingsTitle = "Distribution of IMDB Ratings"

// RatingsTitleFor returns the pie title for a rating result.
func RatingsTitleFor(r pipeline.RatingResult) string {
	if r.Single {
		return "IMDB Rating: " + pipeline.FormatRating(r.Rating)
	}
	return RatingsTitle
}

// Ratings renders the rating-distribution pie.
func (b *Builder) Ratings(r pipeline.RatingResult) Figure {
	if r.Empty() {
		return Placeholder(IDRatings)
	}
	title := RatingsTitleFor(r)

	data := make([]opts.PieData, len(r.Slices))
	for i, s := range r.Slices {
		data[i] = opts.PieData{Name: s.Label, Value: s.Count}
	}

	c := charts.NewPie()
	c.SetGlobalOptions(
		titleOpts(title),
		legendOpts(),
		charts.WithColorsOpts(opts.Colors(b.palette)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
	)
	c.AddSeries("Rating", data,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{d}%"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"0%", "70%"}}),
	)

	return figure(IDRatings, title, false, c)
}
