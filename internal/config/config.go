// Package config handles .filmdash.yaml and .filmdash.toml configuration files.
package config

import "github.com/davetashner/filmdash/internal/pipeline"

// Config represents the contents of a filmdash config file. Every field is
// optional; unset fields fall through to the next source in precedence order.
type Config struct {
	Dataset     string    `yaml:"dataset,omitempty" toml:"dataset,omitempty"`
	Listen      string    `yaml:"listen,omitempty" toml:"listen,omitempty"`
	Watch       *bool     `yaml:"watch,omitempty" toml:"watch,omitempty"`
	AssetsHost  string    `yaml:"assets_host,omitempty" toml:"assets_host,omitempty"`
	Format      string    `yaml:"format,omitempty" toml:"format,omitempty"`
	RatingEdges []float64 `yaml:"rating_edges,omitempty" toml:"rating_edges,omitempty"`
	Palette     []string  `yaml:"palette,omitempty" toml:"palette,omitempty"`
}

// Config file names looked up in the working directory. YAML wins when both
// exist.
const (
	FileName     = ".filmdash.yaml"
	TOMLFileName = ".filmdash.toml"
)

// Defaults.
const (
	DefaultDataset    = "data.csv"
	DefaultListen     = "127.0.0.1:8050"
	DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	DefaultFormat     = "json"
)

// Settings is the fully resolved configuration with every field populated.
type Settings struct {
	Dataset     string
	Listen      string
	Watch       bool
	AssetsHost  string
	Format      string
	RatingEdges []float64
	Palette     []string // nil means the chart default
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Dataset:     DefaultDataset,
		Listen:      DefaultListen,
		AssetsHost:  DefaultAssetsHost,
		Format:      DefaultFormat,
		RatingEdges: append([]float64(nil), pipeline.DefaultRatingEdges...),
	}
}

// Apply overlays the set fields of c onto s.
func (c *Config) Apply(s Settings) Settings {
	if c == nil {
		return s
	}
	if c.Dataset != "" {
		s.Dataset = c.Dataset
	}
	if c.Listen != "" {
		s.Listen = c.Listen
	}
	if c.Watch != nil {
		s.Watch = *c.Watch
	}
	if c.AssetsHost != "" {
		s.AssetsHost = c.AssetsHost
	}
	if c.Format != "" {
		s.Format = c.Format
	}
	if len(c.RatingEdges) > 0 {
		s.RatingEdges = append([]float64(nil), c.RatingEdges...)
	}
	if len(c.Palette) > 0 {
		s.Palette = append([]string(nil), c.Palette...)
	}
	return s
}

// Resolve applies global then repo config over the defaults.
func Resolve(global, repo *Config) Settings {
	return repo.Apply(global.Apply(Defaults()))
}
