package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/server"
	"github.com/davetashner/filmdash/internal/watch"
)

// Serve-specific flag values.
var (
	serveData  string
	serveAddr  string
	serveWatch bool
)

// serveCmd runs the interactive dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive dashboard",
	Long: `Load the dataset and serve the dashboard over HTTP until interrupted.

The dataset is read once at startup. With --watch the file is re-read after
every change; a file that fails to parse leaves the previous data in place.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveData, "data", "d", config.DefaultDataset, "CSV dataset path")
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", config.DefaultListen, "listen address")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload the dataset when the file changes")
}

// applyServeFlags overlays explicitly set serve flags on s.
func applyServeFlags(cmd *cobra.Command, s config.Settings) config.Settings {
	if cmd.Flags().Changed("data") {
		s.Dataset = serveData
	}
	if cmd.Flags().Changed("addr") {
		s.Listen = serveAddr
	}
	if cmd.Flags().Changed("watch") {
		s.Watch = serveWatch
	}
	return s
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	s = applyServeFlags(cmd, s)

	bins, err := ratingBins(s)
	if err != nil {
		return err
	}
	ds, err := loadDataset(s.Dataset)
	if err != nil {
		return err
	}
	handle := dataset.NewHandle(ds)

	ctrl := dashboard.NewController(chartBuilder(s), bins)
	srv := server.New(handle, ctrl, server.Options{Addr: s.Listen, AssetsHost: s.AssetsHost})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, handle, s)
}

// serve runs the HTTP server and, when enabled, the dataset watcher until ctx
// ends or either fails.
func serve(ctx context.Context, srv *server.Server, handle *dataset.Handle, s config.Settings) error {
	var reloader *watch.Reloader
	if s.Watch {
		r, err := watch.New(s.Dataset, handle, watch.WithOnReload(func(ds *dataset.Dataset) {
			slog.Info("dataset reloaded", "path", s.Dataset, "movies", ds.Len())
		}))
		if err != nil {
			return exitError(ExitDatasetLoad, "filmdash: %v", err)
		}
		reloader = r
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if reloader != nil {
		g.Go(func() error { return reloader.Run(ctx) })
	}
	return g.Wait()
}
