package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// ReportJSON is the top-level JSON structure for --json output.
type ReportJSON struct {
	Dataset   string             `json:"dataset,omitempty"`
	Generated string             `json:"generated"`
	Selection pipeline.Selection `json:"selection"`
	Matched   int                `json:"matched"`
	Sections  []SectionJSON      `json:"sections"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "empty"
	Content     string `json:"content,omitempty"` // rendered text
}

// Render runs the named sections (all when names is empty) against in and
// writes them to w. Sections with no data print the placeholder line.
func Render(in *Input, names []string, w io.Writer) error {
	for _, name := range ResolveSections(names) {
		sec := Get(name)
		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrNoData) {
				heading(w, sec.Description())
				_, _ = fmt.Fprintf(w, "  %s\n\n", colorMuted.Sprint(chart.NoDataTitle))
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

// RenderJSON writes the report as machine-readable JSON.
func RenderJSON(in *Input, names []string, w io.Writer) error {
	out := ReportJSON{
		Dataset:   in.Source,
		Generated: time.Now().Format(time.RFC3339),
		Selection: in.Snapshot.Selection,
		Matched:   in.Snapshot.Matched,
		Sections:  []SectionJSON{},
	}

	for _, name := range ResolveSections(names) {
		sec := Get(name)
		sj := SectionJSON{Name: sec.Name(), Description: sec.Description()}

		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrNoData) {
				sj.Status = "empty"
				out.Sections = append(out.Sections, sj)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}

		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Status = "ok"
		sj.Content = buf.String()
		out.Sections = append(out.Sections, sj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which sections to run. If filter is empty, all
// registered sections are used; unknown names are skipped.
func ResolveSections(filter []string) []string {
	if len(filter) == 0 {
		return List()
	}
	var names []string
	for _, name := range filter {
		if Get(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

// UnknownSections returns the names in filter that are not registered.
func UnknownSections(filter []string) []string {
	var unknown []string
	for _, name := range filter {
		if Get(name) == nil {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
