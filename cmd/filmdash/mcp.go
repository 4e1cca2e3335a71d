// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/mcpserver"
)

var mcpData string

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running filmdash as an MCP server, exposing the dashboard aggregates as tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing filmdash's tools:
  - dataset_info:        Genres, year range and titles of a dataset
  - genre_popularity:    Movies per genre in three-year release bins
  - rating_revenue:      Average gross and votes per IMDB rating
  - rating_distribution: Movies per rating bin
  - report:              The terminal report sections as JSON
  - export:              JSON, Markdown or HTML export of a selection

Every tool accepts a dataset path. When the configured dataset exists it is
loaded at startup and used as the default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data") {
			s.Dataset = mcpData
		}
		bins, err := ratingBins(s)
		if err != nil {
			return err
		}

		opts := mcpserver.Options{Source: s.Dataset, Bins: bins, Palette: s.Palette, AssetsHost: s.AssetsHost}
		ds, err := dataset.Load(s.Dataset)
		switch {
		case err == nil:
			opts.Handle = dataset.NewHandle(ds)
		case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("data"):
			slog.Debug("no default dataset", "path", s.Dataset)
		default:
			return exitError(ExitDatasetLoad, "filmdash: cannot load dataset %q (%v)", s.Dataset, err)
		}
		return mcpserver.Run(cmd.Context(), Version, opts, &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeCmd.Flags().StringVarP(&mcpData, "data", "d", config.DefaultDataset, "default CSV dataset path")
	mcpCmd.AddCommand(mcpServeCmd)
}
