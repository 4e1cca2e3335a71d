package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/dataset/datasettest"
	"github.com/davetashner/filmdash/internal/pipeline"
)

func newController() *Controller {
	return NewController(chart.NewBuilder(nil), pipeline.DefaultRatingBins())
}

func figureIDs(figs []chart.Figure) []string {
	ids := make([]string, len(figs))
	for i, f := range figs {
		ids[i] = f.ID
	}
	return ids
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeNone, false},
		{"none", ModeNone, false},
		{"movie", ModeMovie, false},
		{"genre", ModeGenre, false},
		{"Movie", ModeNone, true},
		{"both", ModeNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeVisibility(t *testing.T) {
	assert.Equal(t, Visibility{}, ModeNone.Visibility())
	assert.Equal(t, Visibility{Movie: true}, ModeMovie.Visibility())
	assert.Equal(t, Visibility{Genre: true}, ModeGenre.Visibility())
	assert.Equal(t, "none", ModeNone.String())
}

func TestToggle_ClearsMovieAndGenres(t *testing.T) {
	st := State{
		Mode: ModeMovie,
		Selection: pipeline.Selection{
			Genres: []string{"Drama"},
			Years:  pipeline.YearRange{From: 1990, To: 2000},
			Movie:  "Movie A",
		},
	}
	for _, m := range []Mode{ModeNone, ModeMovie, ModeGenre} {
		got := st.Toggle(m)
		assert.Equal(t, m, got.Mode)
		assert.Empty(t, got.Selection.Genres)
		assert.Empty(t, got.Selection.Movie)
		assert.Equal(t, st.Selection.Years, got.Selection.Years)
	}
}

func TestController_Dependents(t *testing.T) {
	c := newController()
	all := []string{chart.IDPopularity, chart.IDRevenue, chart.IDRatings}
	assert.Equal(t, all, c.Charts())
	for _, in := range []Input{InputGenres, InputYears, InputMovie, InputMode} {
		assert.Equal(t, all, c.Dependents(in), string(in))
	}
	assert.Empty(t, c.Dependents(Input("bogus")))
}

func TestController_RegisterOnlyInputs(t *testing.T) {
	c := &Controller{l: newController().l}
	calls := 0
	c.Register("years-only", func(_ *dataset.Dataset, _ pipeline.Selection) chart.Figure {
		calls++
		return chart.Placeholder("years-only")
	}, InputYears)

	assert.Equal(t, []string{"years-only"}, c.Dependents(InputYears))
	assert.Empty(t, c.Dependents(InputMovie))
	assert.Empty(t, c.Dependents(InputMode), "mode only reaches movie or genre dependents")

	ds := datasettest.TwoMovies()
	s := c.NewSession("s")
	up, err := s.Apply(ds, Event{Input: InputMovie, Movie: "Movie A"})
	require.NoError(t, err)
	assert.Empty(t, up.Figures)
	assert.Zero(t, calls)

	up, err = s.Apply(ds, Event{Input: InputYears, Years: pipeline.YearRange{From: 2000, To: 2001}})
	require.NoError(t, err)
	assert.Equal(t, []string{"years-only"}, figureIDs(up.Figures))
	assert.Equal(t, 1, calls)
}

func TestController_RegisterDuplicatePanics(t *testing.T) {
	c := newController()
	assert.Panics(t, func() {
		c.Register(chart.IDRatings, nil, InputYears)
	})
}

func TestValidate(t *testing.T) {
	ds := datasettest.TwoMovies()
	assert.NoError(t, Validate(ds, pipeline.Selection{}))
	assert.NoError(t, Validate(ds, pipeline.Selection{Genres: []string{"Drama"}, Movie: "Movie B"}))
	assert.ErrorIs(t, Validate(ds, pipeline.Selection{Genres: []string{"Horror"}}), ErrUnknownGenre)
	assert.ErrorIs(t, Validate(ds, pipeline.Selection{Movie: "Nope"}), ErrUnknownMovie)
	assert.ErrorIs(t, Validate(ds, pipeline.Selection{Years: pipeline.YearRange{From: 2005, To: 2000}}), ErrYearRange)
}

func TestSession_ModeSwitchClearsSelections(t *testing.T) {
	ds := datasettest.TwoMovies()
	s := newController().NewSession("s")

	_, err := s.Apply(ds, Event{Input: InputMode, Mode: "genre"})
	require.NoError(t, err)
	_, err = s.Apply(ds, Event{Input: InputGenres, Genres: []string{"Drama"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, s.State().Selection.Genres)

	up, err := s.Apply(ds, Event{Input: InputMode, Mode: "movie"})
	require.NoError(t, err)
	assert.Equal(t, ModeMovie, up.State.Mode)
	assert.Equal(t, Visibility{Movie: true}, up.Visibility)
	assert.Empty(t, up.State.Selection.Genres)
	assert.Len(t, up.Figures, 3)
	assert.Equal(t, chart.RatingsTitle, up.Figures[2].Title, "cleared selection falls back to every genre")
}

func TestSession_MovieSelectionRendersCharts(t *testing.T) {
	ds := datasettest.TwoMovies()
	s := newController().NewSession("s")

	up, err := s.Apply(ds, Event{Input: InputMovie, Movie: "Movie A"})
	require.NoError(t, err)
	require.Len(t, up.Figures, 3)
	assert.Equal(t, []string{chart.IDPopularity, chart.IDRevenue, chart.IDRatings}, figureIDs(up.Figures))
	assert.Equal(t, "IMDB Rating: 8.0", up.Figures[2].Title)
	assert.False(t, up.Figures[0].Empty)
}

func TestSession_InvalidEventKeepsState(t *testing.T) {
	ds := datasettest.TwoMovies()
	s := newController().NewSession("s")
	_, err := s.Apply(ds, Event{Input: InputGenres, Genres: []string{"Action"}})
	require.NoError(t, err)

	_, err = s.Apply(ds, Event{Input: InputGenres, Genres: []string{"Horror"}})
	assert.ErrorIs(t, err, ErrUnknownGenre)
	_, err = s.Apply(ds, Event{Input: InputMode, Mode: "sideways"})
	assert.Error(t, err)
	_, err = s.Apply(ds, Event{Input: "colour"})
	assert.ErrorIs(t, err, ErrUnknownInput)

	assert.Equal(t, []string{"Action"}, s.State().Selection.Genres)
}

func TestSession_SingleYearBoundIsCompleted(t *testing.T) {
	ds := datasettest.TwoMovies()
	s := newController().NewSession("s")

	up, err := s.Apply(ds, Event{Input: InputYears, Years: pipeline.YearRange{From: 2001}})
	require.NoError(t, err)
	assert.Equal(t, pipeline.YearRange{From: 2001, To: 2001}, up.State.Selection.Years)
	assert.Equal(t, chart.RatingsTitle, up.Figures[2].Title)
	assert.False(t, up.Figures[2].Empty)

	up, err = s.Apply(ds, Event{Input: InputYears, Years: pipeline.YearRange{To: 2000}})
	require.NoError(t, err)
	assert.Equal(t, pipeline.YearRange{From: 2000, To: 2000}, up.State.Selection.Years)

	_, err = s.Apply(ds, Event{Input: InputYears, Years: pipeline.YearRange{From: 2005}})
	assert.ErrorIs(t, err, ErrYearRange, "a lower bound past the dataset still inverts the range")
}

func TestSession_Snapshot(t *testing.T) {
	ds := datasettest.Sample()
	s := newController().NewSession("s")
	up := s.Snapshot(ds)
	assert.Len(t, up.Figures, 3)
	assert.Equal(t, ModeNone, up.State.Mode)
	for _, f := range up.Figures {
		assert.False(t, f.Empty, f.ID)
	}

	_, err := s.Apply(ds, Event{Input: InputYears, Years: pipeline.YearRange{From: 1900, To: 1901}})
	require.NoError(t, err)
	for _, f := range s.Snapshot(ds).Figures {
		assert.True(t, f.Empty, f.ID)
	}
}

func TestSession_ConcurrentEventsAreSerialized(t *testing.T) {
	ds := datasettest.Sample()
	s := newController().NewSession("s")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := Event{Input: InputGenres, Genres: []string{"Drama"}}
			if i%2 == 0 {
				ev = Event{Input: InputYears, Years: pipeline.YearRange{From: 1950, To: 2020}}
			}
			_, err := s.Apply(ds, ev)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	st := s.State()
	assert.Equal(t, []string{"Drama"}, st.Selection.Genres)
	assert.Equal(t, pipeline.YearRange{From: 1950, To: 2020}, st.Selection.Years)
}

func TestSessions_GetAndPrune(t *testing.T) {
	ss := NewSessions(newController())

	a, created := ss.Get("")
	require.True(t, created)
	require.NotEmpty(t, a.ID)

	again, created := ss.Get(a.ID)
	assert.False(t, created)
	assert.Same(t, a, again)

	b, created := ss.Get("unknown-id")
	assert.True(t, created)
	assert.NotEqual(t, "unknown-id", b.ID)
	assert.Equal(t, 2, ss.Len())

	assert.Zero(t, ss.Prune(time.Now(), time.Hour))
	assert.Equal(t, 2, ss.Prune(time.Now().Add(2*time.Hour), time.Hour))
	assert.Zero(t, ss.Len())
}
