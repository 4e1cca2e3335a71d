package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/dataset/datasettest"
	"github.com/davetashner/filmdash/internal/pipeline"
)

func TestYearRange_Set(t *testing.T) {
	ds := datasettest.Sample() // 1957-2013
	tests := []struct {
		in      string
		want    pipeline.YearRange
		str     string
		wantErr string
	}{
		{in: "1990:2005", want: pipeline.YearRange{From: 1990, To: 2005}, str: "1990:2005"},
		{in: "1990:", want: pipeline.YearRange{From: 1990, To: 2013}, str: "1990:"},
		{in: ":1970", want: pipeline.YearRange{From: 1957, To: 1970}, str: ":1970"},
		{in: "1994", want: pipeline.YearRange{From: 1994, To: 1994}, str: "1994:1994"},
		{in: " 2000 : 2001 ", want: pipeline.YearRange{From: 2000, To: 2001}, str: "2000:2001"},
		{in: "2005:1990", wantErr: "invalid year range"},
		{in: "abc:2000", wantErr: "not a year"},
		{in: "-5:2000", wantErr: "not a year"},
		{in: ":", wantErr: "expected FROM:TO"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var y yearRange
			err := y.Set(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.False(t, y.set)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, y.resolve(ds))
			assert.Equal(t, tt.str, y.String())
		})
	}
}

func TestYearRange_Unset(t *testing.T) {
	var y yearRange
	assert.Equal(t, "", y.String())
	assert.Equal(t, "FROM:TO", y.Type())
	assert.True(t, y.resolve(datasettest.Sample()).IsZero())
}

func TestSelectionFlags_Validate(t *testing.T) {
	ds := datasettest.Sample()

	f := selectionFlags{genres: []string{"Drama"}, movie: "Heat"}
	sel, err := f.selection(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, sel.Genres)
	assert.Equal(t, "Heat", sel.Movie)

	f = selectionFlags{genres: []string{"Western"}}
	_, err = f.selection(ds)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
	assert.Contains(t, err.Error(), "unknown genre")

	f = selectionFlags{movie: "Nope"}
	_, err = f.selection(ds)
	assert.Contains(t, err.Error(), "unknown movie")
}
