package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/output"
	"github.com/davetashner/filmdash/internal/pipeline"
	"github.com/davetashner/filmdash/internal/report"
)

// DatasetInput is the input schema for the dataset_info tool.
type DatasetInput struct {
	Path string `json:"path,omitempty" jsonschema:"CSV dataset path (defaults to the server's dataset)"`
}

// SelectionInput is the input schema for the aggregate tools.
type SelectionInput struct {
	Path   string `json:"path,omitempty" jsonschema:"CSV dataset path (defaults to the server's dataset)"`
	Genres string `json:"genres,omitempty" jsonschema:"Comma-separated genre names (empty means every genre)"`
	From   int    `json:"from,omitempty" jsonschema:"First release year, inclusive (defaults to the earliest year)"`
	To     int    `json:"to,omitempty" jsonschema:"Last release year, inclusive (defaults to the latest year)"`
	Movie  string `json:"movie,omitempty" jsonschema:"Exact movie title to focus on"`
}

// ReportInput is the input schema for the report tool.
type ReportInput struct {
	Path     string `json:"path,omitempty" jsonschema:"CSV dataset path (defaults to the server's dataset)"`
	Genres   string `json:"genres,omitempty" jsonschema:"Comma-separated genre names (empty means every genre)"`
	From     int    `json:"from,omitempty" jsonschema:"First release year, inclusive (defaults to the earliest year)"`
	To       int    `json:"to,omitempty" jsonschema:"Last release year, inclusive (defaults to the latest year)"`
	Movie    string `json:"movie,omitempty" jsonschema:"Exact movie title to focus on"`
	Sections string `json:"sections,omitempty" jsonschema:"Comma-separated list of report sections to include"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json or text (default: json)"`
}

// ExportInput is the input schema for the export tool.
type ExportInput struct {
	Path     string `json:"path,omitempty" jsonschema:"CSV dataset path (defaults to the server's dataset)"`
	Genres   string `json:"genres,omitempty" jsonschema:"Comma-separated genre names (empty means every genre)"`
	From     int    `json:"from,omitempty" jsonschema:"First release year, inclusive (defaults to the earliest year)"`
	To       int    `json:"to,omitempty" jsonschema:"Last release year, inclusive (defaults to the latest year)"`
	Movie    string `json:"movie,omitempty" jsonschema:"Exact movie title to focus on"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json, markdown or html (default: json)"`
}

func (in ReportInput) selection() SelectionInput {
	return SelectionInput{Path: in.Path, Genres: in.Genres, From: in.From, To: in.To, Movie: in.Movie}
}

func (in ExportInput) selection() SelectionInput {
	return SelectionInput{Path: in.Path, Genres: in.Genres, From: in.From, To: in.To, Movie: in.Movie}
}

// DatasetInfo summarizes a loaded dataset.
type DatasetInfo struct {
	Source string             `json:"source"`
	Movies int                `json:"movies"`
	Genres []string           `json:"genres"`
	Years  pipeline.YearRange `json:"years"`
	Titles []string           `json:"titles"`
}

type tools struct {
	opts    Options
	builder *chart.Builder

	// reportMu serializes use of the global report sections.
	reportMu sync.Mutex
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

var readOnly = &mcp.ToolAnnotations{
	ReadOnlyHint:    true,
	DestructiveHint: boolPtr(false),
	OpenWorldHint:   boolPtr(false),
}

// register adds all dashboard tools to the MCP server.
func (t *tools) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dataset_info",
		Description: "Describe a movie dataset: row count, genre columns, release year range and titles.",
		Annotations: readOnly,
	}, t.handleDatasetInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "genre_popularity",
		Description: "Count matching movies per genre in three-year release bins. A selected movie adds a marker at its bin.",
		Annotations: readOnly,
	}, t.handlePopularity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rating_revenue",
		Description: "Mean gross revenue and mean vote count per IMDB rating over the matching movies, plus the selected movie's own point.",
		Annotations: readOnly,
	}, t.handleRevenue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rating_distribution",
		Description: "Distribution of matching movies across rating bins, or the single rating of a selected movie.",
		Annotations: readOnly,
	}, t.handleRatings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Render the dashboard report sections (overview, popularity, revenue, ratings) as JSON or plain text.",
		Annotations: readOnly,
	}, t.handleReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Export the current selection's aggregates and chart options as JSON, Markdown or a self-contained HTML page.",
		Annotations: readOnly,
	}, t.handleExport)
}

// load returns the dataset named by path, or the server's dataset when path
// is empty.
func (t *tools) load(path string) (*dataset.Dataset, string, error) {
	if path == "" {
		if t.opts.Handle == nil {
			return nil, "", fmt.Errorf("no dataset loaded: pass a path")
		}
		return t.opts.Handle.Load(), t.opts.Source, nil
	}
	abs, err := ResolveDataset(path)
	if err != nil {
		return nil, "", err
	}
	ds, err := dataset.Load(abs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, abs, nil
}

// selection loads the dataset and builds a validated selection from in.
func (t *tools) selection(in SelectionInput) (*dataset.Dataset, string, pipeline.Selection, error) {
	ds, source, err := t.load(in.Path)
	if err != nil {
		return nil, "", pipeline.Selection{}, err
	}
	sel := pipeline.Selection{Genres: splitAndTrim(in.Genres), Movie: strings.TrimSpace(in.Movie)}
	if in.From != 0 || in.To != 0 {
		lo, hi := ds.YearRange()
		sel.Years = pipeline.YearRange{From: lo, To: hi}
		if in.From != 0 {
			sel.Years.From = in.From
		}
		if in.To != 0 {
			sel.Years.To = in.To
		}
	}
	if err := dashboard.Validate(ds, sel); err != nil {
		return nil, "", pipeline.Selection{}, err
	}
	return ds, source, sel, nil
}

func (t *tools) handleDatasetInfo(_ context.Context, _ *mcp.CallToolRequest, input DatasetInput) (*mcp.CallToolResult, any, error) {
	ds, source, err := t.load(input.Path)
	if err != nil {
		return nil, nil, err
	}
	lo, hi := ds.YearRange()
	return jsonResult(DatasetInfo{
		Source: source,
		Movies: ds.Len(),
		Genres: ds.Genres(),
		Years:  pipeline.YearRange{From: lo, To: hi},
		Titles: ds.Titles(),
	})
}

func (t *tools) handlePopularity(_ context.Context, _ *mcp.CallToolRequest, input SelectionInput) (*mcp.CallToolResult, any, error) {
	ds, _, sel, err := t.selection(input)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(pipeline.Popularity(ds, sel))
}

func (t *tools) handleRevenue(_ context.Context, _ *mcp.CallToolRequest, input SelectionInput) (*mcp.CallToolResult, any, error) {
	ds, _, sel, err := t.selection(input)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(pipeline.Revenue(ds, sel))
}

func (t *tools) handleRatings(_ context.Context, _ *mcp.CallToolRequest, input SelectionInput) (*mcp.CallToolResult, any, error) {
	ds, _, sel, err := t.selection(input)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(pipeline.Ratings(ds, sel, t.opts.Bins))
}

func (t *tools) handleReport(_ context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	ds, source, sel, err := t.selection(input.selection())
	if err != nil {
		return nil, nil, err
	}

	render := report.RenderJSON
	switch input.Format {
	case "", "json":
	case "text":
		render = report.Render
	default:
		return nil, nil, fmt.Errorf("unsupported format %q (available: json, text)", input.Format)
	}

	sections := splitAndTrim(input.Sections)
	if unknown := report.UnknownSections(sections); len(unknown) > 0 {
		return nil, nil, fmt.Errorf("unknown sections: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(report.List(), ", "))
	}

	t.reportMu.Lock()
	defer t.reportMu.Unlock()
	var buf bytes.Buffer
	in := report.NewInput(ds, source, sel, t.opts.Bins)
	if err := render(in, report.ResolveSections(sections), &buf); err != nil {
		return nil, nil, fmt.Errorf("rendering failed: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func (t *tools) handleExport(_ context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, any, error) {
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	// sqlite writes a binary file and has no place in a text tool result.
	if format == "sqlite" {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}

	ds, source, sel, err := t.selection(input.selection())
	if err != nil {
		return nil, nil, err
	}

	e := output.NewExport(ds, source, sel, t.opts.Bins, t.builder)
	e.AssetsHost = t.opts.AssetsHost
	var buf bytes.Buffer
	if err := formatter.Format(e, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	slog.Debug("mcp export", "format", format, "matched", e.Snapshot.Matched)
	return textResult(buf.String()), nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(b)), nil, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
