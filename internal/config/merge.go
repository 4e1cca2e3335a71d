package config

// Merge combines global and repo configs. Repo values take precedence; only
// set repo fields override global ones.
func Merge(global, repo *Config) *Config {
	merged := Config{}
	if global != nil {
		merged = *global
	}
	if repo == nil {
		return &merged
	}

	if repo.Dataset != "" {
		merged.Dataset = repo.Dataset
	}
	if repo.Listen != "" {
		merged.Listen = repo.Listen
	}
	if repo.Watch != nil {
		merged.Watch = repo.Watch
	}
	if repo.AssetsHost != "" {
		merged.AssetsHost = repo.AssetsHost
	}
	if repo.Format != "" {
		merged.Format = repo.Format
	}
	if len(repo.RatingEdges) > 0 {
		merged.RatingEdges = repo.RatingEdges
	}
	if len(repo.Palette) > 0 {
		merged.Palette = repo.Palette
	}
	return &merged
}
