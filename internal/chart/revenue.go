package chart

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davetashner/filmdash/internal/pipeline"
)

// RevenueTitle is the bubble chart's title.
const RevenueTitle = "Average Gross Revenue vs. IMDB Rating"

// Bubble sizing: area is proportional to votes, the largest bubble is
// MaxBubble pixels across.
const (
	MaxBubble = 60
	MinBubble = 4
)

// selectedSuffix disambiguates a selected movie whose title equals the
// aggregate series label.
const selectedSuffix = " (selected)"

// Revenue renders the rating/revenue bubble chart. The aggregate series and
// the selected movie's point are drawn together in their fixed colors.
func (b *Builder) Revenue(r pipeline.RevenueResult) Figure {
	if r.Empty() {
		return Placeholder(IDRevenue)
	}

	maxVotes := 0.0
	for _, s := range revenueSeries(r) {
		for _, p := range s.Points {
			maxVotes = math.Max(maxVotes, p.Votes)
		}
	}

	c := charts.NewScatter()
	c.SetGlobalOptions(
		titleOpts(RevenueTitle),
		legendOpts(),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "IMDB Rating", Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Gross Revenue ($)", Type: "value", Scale: true}),
	)

	for _, s := range revenueSeries(r) {
		color := ColorAverage
		name := s.Label
		if s.Role == pipeline.RoleSelected {
			color = ColorSelected
			if name == pipeline.AverageLabel {
				name += selectedSuffix
			}
		}
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			if p.Gross == nil {
				continue
			}
			data = append(data, opts.ScatterData{
				Name:       s.Label,
				Value:      []interface{}{p.Rating, *p.Gross, p.Votes, p.Count},
				SymbolSize: BubbleSize(p.Votes, maxVotes),
			})
		}
		c.AddSeries(name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color, Opacity: 0.6}),
		)
	}

	return figure(IDRevenue, RevenueTitle, false, c)
}

func revenueSeries(r pipeline.RevenueResult) []pipeline.RevenueSeries {
	out := []pipeline.RevenueSeries{r.Average}
	if r.Selected != nil {
		out = append(out, *r.Selected)
	}
	return out
}

// BubbleSize maps a vote count to a symbol diameter so that bubble area is
// proportional to votes.
func BubbleSize(votes, maxVotes float64) int {
	if maxVotes <= 0 || votes <= 0 {
		return MinBubble
	}
	size := int(math.Round(math.Sqrt(votes/maxVotes) * MaxBubble))
	if size < MinBubble {
		return MinBubble
	}
	return size
}
