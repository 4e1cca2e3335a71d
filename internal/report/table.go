package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables to an io.Writer. Widths are measured in
// runes so accented titles line up.
type Table struct {
	columns []Column
	rows    [][]string
	styles  []ColorFunc // per-row label color, nil for none
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	t.AddStyledRow(nil, values...)
}

// AddStyledRow appends a row whose first cell is colored by style instead of
// the column's color function.
func (t *Table) AddStyledRow(style ColorFunc, values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
	t.styles = append(t.styles, style)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = width(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], width(cell))
		}
	}

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	sep := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = pad(bold.Sprint(col.Header), col.Header, widths[i], col.Align)
		sep[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, header); err != nil {
		return err
	}
	if err := writeLine(w, sep); err != nil {
		return err
	}

	for r, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			display := row[i]
			switch {
			case i == 0 && t.styles[r] != nil:
				display = t.styles[r](row[i])
			case col.Color != nil:
				display = col.Color(row[i])
			}
			// Padding is based on the raw value, not the ANSI-colored one.
			parts[i] = pad(display, row[i], widths[i], col.Align)
		}
		if err := writeLine(w, parts); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, parts []string) error {
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func pad(display, raw string, width int, align Alignment) string {
	n := max(width-runewidth.StringWidth(raw), 0)
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}

// width is the terminal cell width of s; wide runes take two cells.
func width(s string) int {
	return runewidth.StringWidth(s)
}

// Bar renders n out of total as a bar at most size cells wide. Any non-zero
// n gets at least one cell.
func Bar(n, total, size int) string {
	if total <= 0 || n <= 0 || size <= 0 {
		return ""
	}
	cells := n * size / total
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("#", cells)
}

// heading writes a bold title underlined with dashes.
func heading(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(title), strings.Repeat("-", width(title)))
}
