package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/report"
)

func TestReport_AllSections(t *testing.T) {
	isolate(t)
	out, err := execute(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Movies:    6 (1957-2010, 4 genres)")
	assert.Contains(t, out, chart.PopularityTitle)
	assert.Contains(t, out, chart.RevenueTitle)
	assert.Contains(t, out, chart.RatingsTitle)
}

func TestReport_SelectedSectionsAndMovie(t *testing.T) {
	isolate(t)
	out, err := execute(t, "report", "--sections", "ratings", "--movie", "Inception")
	require.NoError(t, err)
	assert.Contains(t, out, "IMDB Rating: 8.8")
	assert.NotContains(t, out, "Overview")
}

func TestReport_EmptySelection(t *testing.T) {
	isolate(t)
	out, err := execute(t, "report", "--sections", "popularity", "--years", "1900:1901")
	require.NoError(t, err)
	assert.Contains(t, out, chart.NoDataTitle)
}

func TestReport_JSONToFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "report.json")
	_, err := execute(t, "report", "--json", "-o", path, "--sections", "overview,revenue")
	require.NoError(t, err)

	b, err := os.ReadFile(path) //nolint:gosec // test path
	require.NoError(t, err)
	var got report.ReportJSON
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "overview", got.Sections[0].Name)
	assert.Equal(t, "revenue", got.Sections[1].Name)
	assert.Equal(t, 6, got.Matched)
}

func TestReport_UnknownSection(t *testing.T) {
	isolate(t)
	_, err := execute(t, "report", "--sections", "overview,bogus")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
	assert.Contains(t, err.Error(), "unknown sections: bogus")
}
