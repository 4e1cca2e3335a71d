// Package output defines the Formatter interface for exporting the
// dashboard's aggregates in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// Export is one selection's worth of dashboard data: the aggregates and the
// figures drawn from them.
type Export struct {
	Source     string   // dataset path, informational
	Movies     int      // rows in the dataset
	Genres     []string // every genre column, in dataset order
	AssetsHost string   // where the HTML export loads echarts.min.js from
	Snapshot   *pipeline.Snapshot
	Figures    []chart.Figure
}

// NewExport computes the aggregates and figures for sel.
func NewExport(ds *dataset.Dataset, source string, sel pipeline.Selection, bins pipeline.RatingBins, b *chart.Builder) *Export {
	snap := pipeline.Compute(ds, sel, bins)
	return &Export{
		Source:   source,
		Movies:   ds.Len(),
		Genres:   ds.Genres(),
		Snapshot: snap,
		Figures: []chart.Figure{
			b.Popularity(snap.Popularity),
			b.Revenue(snap.Revenue),
			b.Ratings(snap.Ratings),
		},
	}
}

// Formatter writes an export to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "json", "markdown").
	Name() string

	// Format writes e to w.
	Format(e *Export, w io.Writer) error
}

// FileFormatter extends Formatter for formats that are best written straight
// to a path (e.g., a database file) instead of a stream.
type FileFormatter interface {
	Formatter
	FormatFile(e *Export, path string) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatNames returns a comma-separated sorted list of registered format names.
// Callers hold fmtMu.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func timestamp(now func() time.Time) string {
	t := time.Now()
	if now != nil {
		t = now()
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
