package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/davetashner/filmdash/internal/pipeline"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps the aggregates with metadata for the JSON output format.
type JSONEnvelope struct {
	*pipeline.Snapshot
	Metadata JSONMetadata `json:"metadata"`
}

// JSONMetadata describes the dataset the aggregates were computed from.
type JSONMetadata struct {
	Dataset     string   `json:"dataset,omitempty"`
	Movies      int      `json:"movies"`
	Genres      []string `json:"genres"`
	GeneratedAt string   `json:"generated_at"`
}

// JSONFormatter writes the snapshot as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces on terminals.
	Compact bool

	nowFunc func() time.Time
}

var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes e as a JSON document to w.
func (f *JSONFormatter) Format(e *Export, w io.Writer) error {
	genres := e.Genres
	if genres == nil {
		genres = []string{}
	}
	envelope := JSONEnvelope{
		Snapshot: e.Snapshot,
		Metadata: JSONMetadata{
			Dataset:     e.Source,
			Movies:      e.Movies,
			Genres:      genres,
			GeneratedAt: timestamp(f.nowFunc),
		},
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// shouldCompact pretty-prints for terminals and buffers, compacts for pipes
// and files, unless Compact forces it.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
