package output

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// DefaultAssetsHost is used when an export does not name one.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// HTMLFormatter writes a static dashboard page with the figures embedded as
// ECharts options.
type HTMLFormatter struct {
	nowFunc func() time.Time
}

var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

// Funcs is the template function set shared by every page that embeds
// figure options.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil //nolint:gosec // intentional unescaped embedding
		},
	}
}

// ScriptURL joins an assets host and the ECharts bundle name.
func ScriptURL(host string) string {
	if host == "" {
		host = DefaultAssetsHost
	}
	return strings.TrimSuffix(host, "/") + "/echarts.min.js"
}

type htmlData struct {
	*Export
	GeneratedAt string
	ScriptURL   string
	GenreList   string
	MovieLabel  string
}

// Format writes the dashboard page to w.
func (h *HTMLFormatter) Format(e *Export, w io.Writer) error {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("export").Funcs(Funcs()).Parse(htmlTemplate))
	})

	data := htmlData{
		Export:      e,
		GeneratedAt: timestamp(h.nowFunc),
		ScriptURL:   ScriptURL(e.AssetsHost),
		GenreList:   "all",
		MovieLabel:  "none",
	}
	if sel := e.Snapshot.Selection; len(sel.Genres) > 0 {
		data.GenreList = strings.Join(sel.Genres, ", ")
	}
	if m := e.Snapshot.Selection.Movie; m != "" {
		data.MovieLabel = m
	}

	if err := htmlTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}
