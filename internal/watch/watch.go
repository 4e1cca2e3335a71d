// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package watch reloads the dataset when its CSV file changes on disk.
//
// A successful parse is published through a dataset.Handle; readers holding
// the previous *dataset.Dataset keep a consistent, unmodified view. A file
// that fails to parse is logged and ignored.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/davetashner/filmdash/internal/dataset"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Option configures a Reloader.
type Option func(*Reloader)

// WithDebounce sets the quiet period after the last event before reloading.
func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) { r.debounce = d }
}

// WithLoader replaces dataset.Load.
func WithLoader(fn func(path string) (*dataset.Dataset, error)) Option {
	return func(r *Reloader) { r.load = fn }
}

// WithOnReload sets a callback run after each successful swap.
func WithOnReload(fn func(*dataset.Dataset)) Option {
	return func(r *Reloader) { r.onReload = fn }
}

// Reloader watches one dataset file.
type Reloader struct {
	path     string
	handle   *dataset.Handle
	debounce time.Duration
	load     func(string) (*dataset.Dataset, error)
	onReload func(*dataset.Dataset)
	l        *slog.Logger
}

// New returns a Reloader for path that publishes into h.
func New(path string, h *dataset.Handle, opts ...Option) (*Reloader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	r := &Reloader{
		path:     abs,
		handle:   h,
		debounce: DefaultDebounce,
		load:     dataset.Load,
		onReload: func(*dataset.Dataset) {},
		l:        slog.Default().With(slog.String("module", "watch")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Path returns the absolute path being watched.
func (r *Reloader) Path() string {
	return r.path
}

// Reload parses the file and swaps it in. On failure the current dataset is
// kept and the error returned.
func (r *Reloader) Reload() error {
	ds, err := r.load(r.path)
	if err != nil {
		r.l.Warn("dataset reload failed; keeping previous", slog.String("path", r.path), slog.Any("error", err))
		return err
	}
	r.handle.Swap(ds)
	r.l.Info("dataset reloaded", slog.String("path", r.path), slog.Int("movies", ds.Len()))
	r.onReload(ds)
	return nil
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so atomic replace-by-rename is seen.
func (r *Reloader) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close() //nolint:errcheck // shutdown

	if err := fsw.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}
	r.l.Debug("watching dataset", slog.String("path", r.path), slog.Duration("debounce", r.debounce))

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				r.l.Warn("dataset file removed; keeping previous", slog.String("path", r.path))
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				timer.Reset(r.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			r.l.Warn("watch error", slog.Any("error", err))

		case <-timer.C:
			_ = r.Reload()
		}
	}
}
