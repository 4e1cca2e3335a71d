// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// Options carries the dataset and rendering settings the tools share.
// Handle may be nil, in which case every call must name a dataset path.
type Options struct {
	Handle     *dataset.Handle
	Source     string
	Bins       pipeline.RatingBins
	Palette    []string
	AssetsHost string
}

// New creates a new MCP server with the dashboard tools registered.
func New(version string, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "filmdash",
		Title:   "Filmdash: Film Dataset Dashboard",
		Version: version,
	}, nil)

	if opts.Bins.Len() == 0 {
		opts.Bins = pipeline.DefaultRatingBins()
	}
	t := &tools{opts: opts, builder: chart.NewBuilder(opts.Palette)}
	t.register(server)
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, opts Options, transport mcp.Transport) error {
	server := New(version, opts)
	return server.Run(ctx, transport)
}
