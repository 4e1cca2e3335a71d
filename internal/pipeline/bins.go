// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
)

// YearBinWidth is the number of release years covered by one year bin.
const YearBinWidth = 3

// YearBinStart returns the first year of the bin holding year. Bins are
// anchored at minYear.
func YearBinStart(year, minYear int) int {
	return floorDiv(year-minYear, YearBinWidth)*YearBinWidth + minYear
}

// YearBin returns the "{start}-{end}" label of the bin holding year.
func YearBin(year, minYear int) string {
	start := YearBinStart(year, minYear)
	return fmt.Sprintf("%d-%d", start, start+YearBinWidth-1)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// DefaultRatingEdges are the inner edges of the eight rating bins used when no
// configuration overrides them.
var DefaultRatingEdges = []float64{7.75, 8, 8.25, 8.5, 8.75, 9, 9.25}

// ErrInvalidEdges is returned by NewRatingBins for unusable edge lists.
var ErrInvalidEdges = errors.New("rating edges must be a non-empty, strictly increasing list")

// RatingBins splits ratings into len(edges)+1 half-open intervals. Each bin
// includes its lower edge: [edges[i-1], edges[i]).
type RatingBins struct {
	edges []float64
}

// NewRatingBins validates edges and returns the bins they describe.
func NewRatingBins(edges []float64) (RatingBins, error) {
	if len(edges) == 0 {
		return RatingBins{}, ErrInvalidEdges
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return RatingBins{}, fmt.Errorf("%w: edge %d is %v", ErrInvalidEdges, i, e)
		}
		if i > 0 && e <= edges[i-1] {
			return RatingBins{}, fmt.Errorf("%w: %v follows %v", ErrInvalidEdges, e, edges[i-1])
		}
	}
	return RatingBins{edges: append([]float64(nil), edges...)}, nil
}

// DefaultRatingBins returns the bins built from DefaultRatingEdges.
func DefaultRatingBins() RatingBins {
	return RatingBins{edges: append([]float64(nil), DefaultRatingEdges...)}
}

// Len returns the number of bins.
func (b RatingBins) Len() int {
	return len(b.edges) + 1
}

// Index returns the bin a rating falls into.
func (b RatingBins) Index(rating float64) int {
	return sort.Search(len(b.edges), func(i int) bool {
		return b.edges[i] > rating
	})
}

// Label returns the display label of bin i, e.g. "<7.75", "8-8.25", ">9.25".
func (b RatingBins) Label(i int) string {
	n := len(b.edges)
	switch {
	case n == 0:
		return ""
	case i <= 0:
		return "<" + formatEdge(b.edges[0])
	case i >= n:
		return ">" + formatEdge(b.edges[n-1])
	default:
		return formatEdge(b.edges[i-1]) + "-" + formatEdge(b.edges[i])
	}
}

// Labels returns every bin label in order.
func (b RatingBins) Labels() []string {
	out := make([]string, b.Len())
	for i := range out {
		out[i] = b.Label(i)
	}
	return out
}

// Edges returns a copy of the inner edges.
func (b RatingBins) Edges() []float64 {
	return append([]float64(nil), b.edges...)
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatRating prints a rating with at least one decimal: 8 -> "8.0",
// 8.25 -> "8.25".
func FormatRating(r float64) string {
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatGross renders a gross value with thousands separators, or "-" when
// unknown.
func FormatGross(g *float64) string {
	if g == nil {
		return "-"
	}
	return humanize.Comma(int64(math.Round(*g)))
}
