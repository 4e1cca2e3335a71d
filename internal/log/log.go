// Package log configures structured logging for filmdash using log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Formats accepted by SetupWith.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options controls the default logger.
type Options struct {
	Verbose bool
	Quiet   bool
	Format  string    // FormatText (default) or FormatJSON
	Writer  io.Writer // defaults to os.Stderr
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Setup configures the default slog logger as text on stderr.
func Setup(verbose, quiet bool) {
	_ = SetupWith(Options{Verbose: verbose, Quiet: quiet})
}

// SetupWith configures the default slog logger from opts.
func SetupWith(opts Options) error {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: Level(opts.Verbose, opts.Quiet)}

	var h slog.Handler
	switch opts.Format {
	case "", FormatText:
		h = slog.NewTextHandler(w, ho)
	case FormatJSON:
		h = slog.NewJSONHandler(w, ho)
	default:
		return fmt.Errorf("unknown log format %q (must be text or json)", opts.Format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}
