package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/pipeline"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the aggregates as Markdown tables.
type MarkdownFormatter struct{}

var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes a title, a selection summary and one section per chart.
// Sections with no data carry the placeholder text instead of a table.
func (m *MarkdownFormatter) Format(e *Export, w io.Writer) error {
	s := e.Snapshot
	var b strings.Builder

	b.WriteString("# Film Dashboard\n\n")
	writeSelection(&b, e)

	b.WriteString("## " + chart.PopularityTitle + "\n\n")
	if s.Popularity.Empty() {
		b.WriteString("_" + chart.NoDataTitle + "_\n\n")
	} else {
		writePopularity(&b, s.Popularity)
	}

	b.WriteString("## " + chart.RevenueTitle + "\n\n")
	if s.Revenue.Empty() {
		b.WriteString("_" + chart.NoDataTitle + "_\n\n")
	} else {
		writeRevenue(&b, s.Revenue)
	}

	b.WriteString("## " + chart.RatingsTitleFor(s.Ratings) + "\n\n")
	if s.Ratings.Empty() {
		b.WriteString("_" + chart.NoDataTitle + "_\n\n")
	} else {
		writeRatings(&b, s.Ratings)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func writeSelection(b *strings.Builder, e *Export) {
	s := e.Snapshot
	genres := "all"
	if len(s.Selection.Genres) > 0 {
		genres = strings.Join(s.Selection.Genres, ", ")
	}
	movie := "none"
	if s.Selection.Movie != "" {
		movie = s.Selection.Movie
	}
	fmt.Fprintf(b, "**Genres:** %s | **Years:** %d-%d | **Movie:** %s | **Matched:** %d of %d movies\n\n",
		genres, s.Years.From, s.Years.To, mdEscape(movie), s.Matched, e.Movies)
}

func writePopularity(b *strings.Builder, p pipeline.PopularityResult) {
	b.WriteString("| Year Bin |")
	for _, g := range p.Genres {
		b.WriteString(" " + mdEscape(g) + " |")
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(p.Genres)))
	b.WriteString("\n")

	series := make([][]int, len(p.Genres))
	for i, g := range p.Genres {
		series[i] = p.Series(g)
	}
	for i, bin := range p.Bins {
		b.WriteString("| " + bin + " |")
		for _, s := range series {
			b.WriteString(" " + strconv.Itoa(s[i]) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.Marker != nil {
		fmt.Fprintf(b, "Selected movie released in **%s**.\n\n", p.Marker.Bin)
	}
}

func writeRevenue(b *strings.Builder, r pipeline.RevenueResult) {
	b.WriteString("| Series | IMDB Rating | Avg Gross | Avg Votes | Movies |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	rows := []pipeline.RevenueSeries{r.Average}
	if r.Selected != nil {
		rows = append(rows, *r.Selected)
	}
	for _, s := range rows {
		for _, p := range s.Points {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %d |\n",
				mdEscape(s.Label), pipeline.FormatRating(p.Rating), pipeline.FormatGross(p.Gross),
				strconv.FormatFloat(p.Votes, 'f', 0, 64), p.Count)
		}
	}
	b.WriteString("\n")
}

func writeRatings(b *strings.Builder, r pipeline.RatingResult) {
	b.WriteString("| Rating | Movies | Share |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, s := range r.Slices {
		fmt.Fprintf(b, "| %s | %d | %s |\n", s.Label, s.Count, share(s.Count, r.Total))
	}
	b.WriteString("\n")
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(100*float64(n)/float64(total), 'f', 1, 64) + "%"
}

// mdEscape escapes pipe characters so titles do not break table cells.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
