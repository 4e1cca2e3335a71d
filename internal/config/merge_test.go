package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_RepoOverridesGlobal(t *testing.T) {
	on := true
	global := &Config{Dataset: "g.csv", Listen: ":1", Watch: &on, Format: "markdown"}
	repo := &Config{Dataset: "r.csv", RatingEdges: []float64{8, 9}}

	got := Merge(global, repo)
	assert.Equal(t, "r.csv", got.Dataset)
	assert.Equal(t, ":1", got.Listen)
	assert.Same(t, &on, got.Watch)
	assert.Equal(t, "markdown", got.Format)
	assert.Equal(t, []float64{8, 9}, got.RatingEdges)

	// Inputs are left alone.
	assert.Equal(t, "g.csv", global.Dataset)
}

func TestMerge_Nil(t *testing.T) {
	assert.Equal(t, &Config{}, Merge(nil, nil))
	assert.Equal(t, &Config{Listen: ":2"}, Merge(nil, &Config{Listen: ":2"}))
	assert.Equal(t, &Config{Listen: ":3"}, Merge(&Config{Listen: ":3"}, nil))
}
