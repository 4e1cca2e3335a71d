package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/dataset/datasettest"
)

func TestPopularity_TwoMovieScenario(t *testing.T) {
	ds := datasettest.TwoMovies()

	p := Popularity(ds, Selection{Years: YearRange{From: 2000, To: 2001}})
	assert.Equal(t, []string{"2000-2002"}, p.Bins)
	assert.Equal(t, []PopularityRow{
		{Bin: "2000-2002", Genre: "Action", Count: 1},
		{Bin: "2000-2002", Genre: "Drama", Count: 1},
	}, p.Rows)
	assert.Nil(t, p.Marker)
}

func TestPopularity_SelectedMovieNarrowsGenresAndMarks(t *testing.T) {
	ds := datasettest.TwoMovies()

	p := Popularity(ds, Selection{Years: YearRange{From: 2000, To: 2001}, Movie: "Movie A"})
	assert.Equal(t, []PopularityRow{{Bin: "2000-2002", Genre: "Drama", Count: 1}}, p.Rows)
	require.NotNil(t, p.Marker)
	assert.Equal(t, Marker{Bin: "2000-2002", Max: 1, Height: 4}, *p.Marker)
}

func TestPopularity_BinsOrderedAndZeroCountsKept(t *testing.T) {
	ds := datasettest.Sample()

	p := Popularity(ds, Selection{Genres: []string{"Sci-Fi", "Crime"}})
	// Anchored at 1957: Alien 1979 -> 1978-1980, Memento 2000 -> 1999-2001, ...
	assert.Equal(t, []string{"1957-1959", "1972-1974", "1978-1980", "1993-1995", "1999-2001", "2008-2010", "2011-2013"}, p.Bins)
	assert.Len(t, p.Rows, len(p.Bins)*2)

	assert.Equal(t, []int{1, 1, 0, 1, 1, 1, 0}, p.Series("Crime"))
	assert.Equal(t, []int{0, 0, 1, 0, 0, 1, 1}, p.Series("Sci-Fi"))

	for i := 1; i < len(p.Rows); i++ {
		prev, cur := p.Rows[i-1], p.Rows[i]
		if prev.Bin == cur.Bin {
			assert.Equal(t, "Crime", prev.Genre, "genres follow column order within a bin")
		}
	}
}

func TestPopularity_MultiGenreMovieCountsPerGenre(t *testing.T) {
	ds := datasettest.Sample()

	p := Popularity(ds, Selection{Years: YearRange{From: 2008, To: 2008}})
	assert.Equal(t, []PopularityRow{
		{Bin: "2008-2010", Genre: "Action", Count: 1},
		{Bin: "2008-2010", Genre: "Crime", Count: 1},
		{Bin: "2008-2010", Genre: "Drama", Count: 1},
		{Bin: "2008-2010", Genre: "Sci-Fi", Count: 0},
	}, p.Rows)
}

func TestPopularity_MarkerMissingWhenMovieOutsideRange(t *testing.T) {
	ds := datasettest.Sample()

	p := Popularity(ds, Selection{Years: YearRange{From: 2000, To: 2013}, Movie: "Alien"})
	assert.False(t, p.Empty())
	assert.Nil(t, p.Marker, "Alien (1979) is outside the range so its bin is not plotted")
}

func TestPopularity_EmptyWhenNothingMatches(t *testing.T) {
	ds := datasettest.TwoMovies()

	p := Popularity(ds, Selection{Genres: []string{"Drama"}, Years: YearRange{From: 2001, To: 2001}})
	assert.True(t, p.Empty())
	assert.Empty(t, p.Bins)
}

func TestRevenue_GroupsByExactRating(t *testing.T) {
	ds := datasettest.Sample()

	r := Revenue(ds, Selection{})
	require.Nil(t, r.Selected)
	assert.Equal(t, AverageLabel, r.Average.Label)
	assert.Equal(t, RoleAverage, r.Average.Role)

	var ratings []float64
	for _, p := range r.Average.Points {
		ratings = append(ratings, p.Rating)
	}
	assert.Equal(t, []float64{7.7, 8.2, 8.4, 8.8, 9.0, 9.2, 9.3}, ratings)

	// 8.4: Paths of Glory (no gross), Alien, Memento.
	p := r.Average.Points[2]
	assert.Equal(t, 3, p.Count)
	require.NotNil(t, p.Gross)
	assert.InDelta(t, (78900000.0+25544867.0)/2, *p.Gross, 1e-6, "missing gross values are skipped")
	assert.InDelta(t, (178092.0+787806.0+1125712.0)/3, p.Votes, 1e-6)

	// 9.0: The Dark Knight and 12 Angry Men.
	p = r.Average.Points[4]
	assert.Equal(t, 2, p.Count)
	assert.InDelta(t, (534858444.0+4360000.0)/2, *p.Gross, 1e-6)
}

func TestRevenue_AllGrossMissingIsNil(t *testing.T) {
	ds := datasettest.Build([]string{"Drama"},
		datasettest.Row{Title: "A", Year: 2000, Rating: 8, Votes: 10, Genres: []string{"Drama"}},
	)
	r := Revenue(ds, Selection{})
	require.Len(t, r.Average.Points, 1)
	assert.Nil(t, r.Average.Points[0].Gross)
}

func TestRevenue_SelectedMovieSeries(t *testing.T) {
	ds := datasettest.TwoMovies()

	r := Revenue(ds, Selection{Movie: "Movie B"})
	require.NotNil(t, r.Selected)
	assert.Equal(t, "Movie B", r.Selected.Label)
	assert.Equal(t, RoleSelected, r.Selected.Role)
	require.Len(t, r.Selected.Points, 1)
	assert.InDelta(t, 9.0, r.Selected.Points[0].Rating, 1e-9)
	assert.InDelta(t, 300.0, *r.Selected.Points[0].Gross, 1e-9)
	assert.InDelta(t, 3000.0, r.Selected.Points[0].Votes, 1e-9)

	assert.Len(t, r.Average.Points, 1, "both series coexist")
}

func TestRevenue_MovieTitledAverageKeepsDistinctRole(t *testing.T) {
	ds := datasettest.Build([]string{"Drama"},
		datasettest.Row{Title: AverageLabel, Year: 2000, Rating: 8, Gross: 5, Votes: 10, Genres: []string{"Drama"}},
	)
	r := Revenue(ds, Selection{Movie: AverageLabel})
	require.NotNil(t, r.Selected)
	assert.Equal(t, AverageLabel, r.Selected.Label)
	assert.NotEqual(t, r.Average.Role, r.Selected.Role)
}

func TestRevenue_Empty(t *testing.T) {
	ds := datasettest.TwoMovies()
	r := Revenue(ds, Selection{Genres: []string{"Western"}, Movie: "Movie A"})
	// The movie's own genre keeps Movie A in play.
	assert.False(t, r.Empty())

	r = Revenue(ds, Selection{Years: YearRange{From: 1900, To: 1901}})
	assert.True(t, r.Empty())
}

func TestRevenue_SelectedMovieOutsideYearRange(t *testing.T) {
	ds := datasettest.TwoMovies()
	r := Revenue(ds, Selection{Years: YearRange{From: 1900, To: 1901}, Movie: "Movie A"})
	assert.Empty(t, r.Average.Points)
	require.NotNil(t, r.Selected)
	require.Len(t, r.Selected.Points, 1)
	assert.InDelta(t, 8.0, r.Selected.Points[0].Rating, 1e-9)
	assert.False(t, r.Empty())
}

func TestRatings_Aggregate(t *testing.T) {
	ds := datasettest.Sample()

	r := Ratings(ds, Selection{}, DefaultRatingBins())
	assert.False(t, r.Single)
	assert.Equal(t, []RatingSlice{
		{Label: "<7.75", Count: 1},
		{Label: "8-8.25", Count: 1},
		{Label: "8.25-8.5", Count: 3},
		{Label: "8.75-9", Count: 1},
		{Label: "9-9.25", Count: 3},
		{Label: ">9.25", Count: 1},
	}, r.Slices, "zero bins are omitted")
	assert.Equal(t, ds.Len(), r.Total)
}

func TestRatings_SingleMovie(t *testing.T) {
	ds := datasettest.TwoMovies()

	r := Ratings(ds, Selection{Movie: "Movie A", Years: YearRange{From: 2001, To: 2001}}, DefaultRatingBins())
	assert.True(t, r.Single)
	assert.Equal(t, []RatingSlice{{Label: "8.0 Rating", Count: 1}}, r.Slices)
	assert.InDelta(t, 8.0, r.Rating, 1e-9)
}

func TestRatings_CustomBins(t *testing.T) {
	ds := datasettest.Sample()
	bins, err := NewRatingBins([]float64{9})
	require.NoError(t, err)

	r := Ratings(ds, Selection{}, bins)
	assert.Equal(t, []RatingSlice{{Label: "<9", Count: 6}, {Label: ">9", Count: 4}}, r.Slices)
}

func TestCompute_MatchesIndividualAggregates(t *testing.T) {
	ds := datasettest.Sample()
	sel := Selection{Genres: []string{"Drama"}, Years: YearRange{From: 1950, To: 2000}}

	snap := Compute(ds, sel, DefaultRatingBins())
	assert.Equal(t, Popularity(ds, sel), snap.Popularity)
	assert.Equal(t, Revenue(ds, sel), snap.Revenue)
	assert.Equal(t, Ratings(ds, sel, DefaultRatingBins()), snap.Ratings)
	assert.Equal(t, len(Filter(ds, sel).Rows), snap.Matched)
	assert.Equal(t, []string{"Drama"}, snap.Genres)
}
