// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package report provides a pluggable section registry for filmdash report.
// Each section reads one selection's aggregates and renders a terminal table.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// ErrNoData indicates a section has nothing to show for the current
// selection.
var ErrNoData = errors.New("no data for selection")

// Input is what every section analyzes.
type Input struct {
	Source   string
	Dataset  *dataset.Dataset
	Snapshot *pipeline.Snapshot
}

// NewInput computes the snapshot for sel.
func NewInput(ds *dataset.Dataset, source string, sel pipeline.Selection, bins pipeline.RatingBins) *Input {
	return &Input{Source: source, Dataset: ds, Snapshot: pipeline.Compute(ds, sel, bins)}
}

// Section is a pluggable report section.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "ratings").
	Name() string

	// Description returns a human-readable description of what this section reports.
	Description() string

	// Analyze prepares internal state for rendering. Returns ErrNoData
	// (wrapped) when the selection leaves the section empty.
	Analyze(in *Input) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

func init() {
	registerBuiltins()
}

// registerBuiltins registers the built-in sections in report order.
func registerBuiltins() {
	Register(&overviewSection{})
	Register(&popularitySection{})
	Register(&revenueSection{})
	Register(&ratingsSection{})
}

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Section)
	order = nil
}
