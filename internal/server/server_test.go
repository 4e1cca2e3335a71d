package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/dataset/datasettest"
	"github.com/davetashner/filmdash/internal/pipeline"
)

func newTestServer(t *testing.T, ds *dataset.Dataset) (*Server, *httptest.Server) {
	t.Helper()
	ctrl := dashboard.NewController(chart.NewBuilder(nil), pipeline.DefaultRatingBins())
	s := New(dataset.NewHandle(ds), ctrl, Options{AssetsHost: "https://assets.example.test/"})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func postEvent(t *testing.T, c *http.Client, url string, ev any) *http.Response {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	resp, err := c.Post(url+"/api/events", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(b)
	assert.Contains(t, page, `src="https://assets.example.test/echarts.min.js"`)
	assert.Contains(t, page, `<option>Movie A</option>`)
	assert.Contains(t, page, `value="Drama"`)
	for _, id := range []string{chart.IDPopularity, chart.IDRevenue, chart.IDRatings} {
		assert.Contains(t, page, `id="`+id+`"`)
	}
	assert.Contains(t, page, `value="2000"`)
	assert.Contains(t, page, `value="2001"`)
}

func TestUnknownPathIs404(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())
	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOptions(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())
	resp, err := http.Get(ts.URL + "/api/options")
	require.NoError(t, err)
	got := decode[OptionsResponse](t, resp)
	assert.Equal(t, []string{"Action", "Drama"}, got.Genres)
	assert.ElementsMatch(t, []string{"Movie A", "Movie B"}, got.Titles)
	assert.Equal(t, pipeline.YearRange{From: 2000, To: 2001}, got.Years)
	assert.Equal(t, 2, got.Movies)
}

func TestFigures(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())

	resp, err := http.Get(ts.URL + "/api/figures?movie=Movie+A")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[FiguresResponse](t, resp)
	require.Len(t, got.Figures, 3)
	assert.Equal(t, "IMDB Rating: 8.0", got.Figures[2].Title)
	assert.Equal(t, "Movie A", got.Selection.Movie)

	resp, err = http.Get(ts.URL + "/api/figures?genre=Drama&from=2001")
	require.NoError(t, err)
	got = decode[FiguresResponse](t, resp)
	assert.Equal(t, pipeline.YearRange{From: 2001, To: 2001}, got.Selection.Years, "missing bound defaults to the dataset")
	for _, f := range got.Figures {
		assert.True(t, f.Empty, f.ID)
	}
}

func TestFigures_BadRequests(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown genre", "genre=Horror", "unknown genre"},
		{"unknown movie", "movie=Nope", "unknown movie"},
		{"reversed years", "from=2005&to=2000", "invalid year range"},
		{"non-numeric year", "from=abc", "not a year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/figures?" + tt.query)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[errorResponse](t, resp)
			assert.Contains(t, got.Error, tt.want)
		})
	}
}

func TestEvents_SessionFlow(t *testing.T) {
	s, ts := newTestServer(t, datasettest.TwoMovies())
	c := newClient(t)

	resp, err := c.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	st := decode[dashboard.Update](t, resp)
	assert.Equal(t, dashboard.ModeNone, st.State.Mode)
	assert.Len(t, st.Figures, 3)
	assert.Equal(t, 1, s.sessions.Len())

	up := decode[dashboard.Update](t, postEvent(t, c, ts.URL, dashboard.Event{Input: dashboard.InputMode, Mode: "genre"}))
	assert.Equal(t, dashboard.Visibility{Genre: true}, up.Visibility)

	up = decode[dashboard.Update](t, postEvent(t, c, ts.URL, dashboard.Event{Input: dashboard.InputGenres, Genres: []string{"Drama"}}))
	assert.Equal(t, []string{"Drama"}, up.State.Selection.Genres)

	up = decode[dashboard.Update](t, postEvent(t, c, ts.URL, dashboard.Event{Input: dashboard.InputMode, Mode: "movie"}))
	assert.Empty(t, up.State.Selection.Genres)
	assert.Equal(t, dashboard.Visibility{Movie: true}, up.Visibility)

	assert.Equal(t, 1, s.sessions.Len(), "cookie keeps the same session")
}

func TestEvents_Rejected(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())
	c := newClient(t)

	resp := postEvent(t, c, ts.URL, dashboard.Event{Input: dashboard.InputMovie, Movie: "Nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorResponse](t, resp).Error, "unknown movie")

	resp, err := c.Post(ts.URL+"/api/events", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	big := strings.Repeat("x", maxEventBytes+1)
	resp, err = c.Post(ts.URL+"/api/events", "application/json", strings.NewReader(`{"movie":"`+big+`"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	resp.Body.Close()
}

func TestDatasetSwapIsVisible(t *testing.T) {
	s, ts := newTestServer(t, datasettest.TwoMovies())
	s.handle.Swap(datasettest.Sample())

	resp, err := http.Get(ts.URL + "/api/options")
	require.NoError(t, err)
	assert.Equal(t, 10, decode[OptionsResponse](t, resp).Movies)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, datasettest.Sample())
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, 10, got["movies"])
}

func TestRequestID(t *testing.T) {
	_, ts := newTestServer(t, datasettest.TwoMovies())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	minted := resp.Header.Get(RequestIDHeader)
	assert.Len(t, minted, 36)

	const id = "0b6c1a9e-3f1e-4c55-9a57-2f0f6d0a1b2c"
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctrl := dashboard.NewController(chart.NewBuilder(nil), pipeline.DefaultRatingBins())
	s := New(dataset.NewHandle(datasettest.TwoMovies()), ctrl, Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddr(t *testing.T) {
	ctrl := dashboard.NewController(chart.NewBuilder(nil), pipeline.DefaultRatingBins())
	s := New(dataset.NewHandle(datasettest.TwoMovies()), ctrl, Options{Addr: "not an address"})
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
