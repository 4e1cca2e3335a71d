package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/dataset/datasettest"
	"github.com/davetashner/filmdash/internal/pipeline"
	"github.com/davetashner/filmdash/internal/server"
)

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"data", "addr", "watch"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), "serve flag --%s not registered", name)
	}
	assert.Error(t, serveCmd.Args(serveCmd, []string{"extra"}))
}

func TestApplyServeFlags(t *testing.T) {
	isolate(t)
	require.NoError(t, serveCmd.Flags().Set("addr", "127.0.0.1:9999"))
	require.NoError(t, serveCmd.Flags().Set("watch", "true"))

	s := config.Defaults()
	s.Dataset = "from-config.csv"
	got := applyServeFlags(serveCmd, s)
	assert.Equal(t, "127.0.0.1:9999", got.Listen)
	assert.True(t, got.Watch)
	assert.Equal(t, "from-config.csv", got.Dataset, "unset flags leave config values alone")
}

func TestServe_MissingDataset(t *testing.T) {
	isolate(t)
	_, err := execute(t, "serve", "--data", "missing.csv")
	require.Error(t, err)
	assert.Equal(t, ExitDatasetLoad, exitCode(err))
}

func TestServe_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	writeTestFile(t, dir, config.FileName, "rating_edges: [9, 8]\n")
	_, err := execute(t, "serve")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
}

func TestServe_StopsOnCancel(t *testing.T) {
	dir := isolate(t)
	s := config.Defaults()
	s.Dataset = filepath.Join(dir, "data.csv")
	s.Listen = "127.0.0.1:0"
	s.Watch = true

	handle := dataset.NewHandle(datasettest.Sample())
	ctrl := dashboard.NewController(chart.NewBuilder(nil), pipeline.DefaultRatingBins())
	srv := server.New(handle, ctrl, server.Options{Addr: s.Listen})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.NoError(t, serve(ctx, srv, handle, s))
}

func TestServe_ListenError(t *testing.T) {
	isolate(t)
	_, err := execute(t, "serve", "--addr", "not an address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
