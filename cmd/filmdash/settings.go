package main

import (
	"fmt"
	"log/slog"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// loadFileConfigs reads the global config and either --config or the config
// file in the working directory.
func loadFileConfigs() (global, repo *config.Config, err error) {
	global, err = config.LoadGlobal()
	if err != nil {
		return nil, nil, fmt.Errorf("loading global config: %w", err)
	}
	if configPath != "" {
		repo, err = config.LoadFile(configPath)
	} else {
		repo, err = config.Load(".")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return global, repo, nil
}

// loadSettings resolves defaults < global < repo and validates the result.
// Commands overlay their own flags on top.
func loadSettings() (config.Settings, error) {
	global, repo, err := loadFileConfigs()
	if err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "filmdash: %v", err)
	}
	if err := config.Validate(config.Merge(global, repo)); err != nil {
		return config.Settings{}, exitError(ExitInvalidArgs, "filmdash: %v", err)
	}
	return config.Resolve(global, repo), nil
}

// ratingBins builds the rating bins for s. Edges were validated with the
// config, so an error here means a flag override was bad.
func ratingBins(s config.Settings) (pipeline.RatingBins, error) {
	bins, err := pipeline.NewRatingBins(s.RatingEdges)
	if err != nil {
		return pipeline.RatingBins{}, exitError(ExitInvalidArgs, "filmdash: rating_edges: %v", err)
	}
	return bins, nil
}

func chartBuilder(s config.Settings) *chart.Builder {
	return chart.NewBuilder(s.Palette)
}

// loadDataset reads the CSV at path, mapping failures to ExitDatasetLoad.
func loadDataset(path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, exitError(ExitDatasetLoad, "filmdash: cannot load dataset %q (%v)", path, err)
	}
	lo, hi := ds.YearRange()
	slog.Info("dataset loaded", "path", path, "movies", ds.Len(), "genres", len(ds.Genres()),
		"years", fmt.Sprintf("%d-%d", lo, hi))
	return ds, nil
}
