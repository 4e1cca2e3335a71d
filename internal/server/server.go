// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package server serves the interactive dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/output"
)

// Defaults for Options.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultPruneEvery  = time.Minute
	DefaultShutdownTTL = 10 * time.Second
)

// SessionCookie holds the dashboard session id.
const SessionCookie = "filmdash_session"

// Options configures a Server.
type Options struct {
	Addr       string
	AssetsHost string
	SessionTTL time.Duration
	PruneEvery time.Duration
}

// Server is the dashboard HTTP server. Every request reads the current
// dataset from the handle, so a reload is picked up without a restart.
type Server struct {
	handle   *dataset.Handle
	ctrl     *dashboard.Controller
	sessions *dashboard.Sessions
	opts     Options
	page     *template.Template
	l        *slog.Logger
}

// New returns a server over h using ctrl for chart recomputation.
func New(h *dataset.Handle, ctrl *dashboard.Controller, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.PruneEvery <= 0 {
		opts.PruneEvery = DefaultPruneEvery
	}
	return &Server{
		handle:   h,
		ctrl:     ctrl,
		sessions: dashboard.NewSessions(ctrl),
		opts:     opts,
		page:     template.Must(template.New("page").Funcs(output.Funcs()).Parse(pageTemplate)),
		l:        slog.Default().With(slog.String("module", "server")),
	}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/figures", s.handleFigures)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/events", s.handleEvent)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return requestID(s.accessLog(mux))
}

// Run listens on opts.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.pruneSessions(ctx)

	errc := make(chan error, 1)
	go func() {
		s.l.Info("dashboard listening", slog.String("addr", "http://"+ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTTL)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.l.Info("dashboard stopped")
	return nil
}

func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(s.opts.PruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.Prune(now, s.opts.SessionTTL); n > 0 {
				s.l.Debug("pruned idle sessions", slog.Int("count", n))
			}
		}
	}
}
