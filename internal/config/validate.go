package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/davetashner/filmdash/internal/output"
	"github.com/davetashner/filmdash/internal/pipeline"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("listen: %v", err))
		}
	}

	if cfg.AssetsHost != "" {
		u, err := url.Parse(cfg.AssetsHost)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("assets_host: must be an absolute URL, got %q", cfg.AssetsHost))
		}
	}

	if cfg.Format != "" {
		if _, err := output.GetFormatter(cfg.Format); err != nil {
			errs = append(errs, fmt.Sprintf("format: %v", err))
		}
	}

	if len(cfg.RatingEdges) > 0 {
		if _, err := pipeline.NewRatingBins(cfg.RatingEdges); err != nil {
			errs = append(errs, fmt.Sprintf("rating_edges: %v", err))
		}
	}

	for i, c := range cfg.Palette {
		if !hexColor.MatchString(c) {
			errs = append(errs, fmt.Sprintf("palette[%d]: invalid color %q (must be #rgb or #rrggbb)", i, c))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
