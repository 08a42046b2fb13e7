// Package table lays rows of markup-styled text out into a bordered,
// column-aligned grid drawn with Unicode box characters.
//
// Every cell runs through markup.Apply when its row is added. Column widths
// are measured on the escape-stripped text so styling never disturbs the
// alignment. A cell containing newlines spans several lines of its row:
//
//	t := table.New()
//	t.AddRow("[b]Name[/b]", "[b]Status[/b]")
//	t.AddRow("api", "[green]up[/green]")
//	fmt.Println(t.Render())
//
// renders
//
//	┌──────┬────────┐
//	│ Name ┆ Status │
//	├╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌┤
//	│ api  ┆ up     │
//	└──────┴────────┘
package table

import (
	"io"
	"strings"

	"github.com/arthur-debert/turboterm/pkg/markup"
)

// Box drawing glyphs. Consumers compare output byte for byte, so these are
// fixed.
const (
	topLeft     = "┌"
	topRight    = "┐"
	topJoin     = "┬"
	bottomLeft  = "└"
	bottomRight = "┘"
	bottomJoin  = "┴"
	midLeft     = "├"
	midRight    = "┤"
	midJoin     = "┼"
	horizontal  = "─"
	dashed      = "╌"
	border      = "│"
	divider     = "┆"
)

// Empty is the rendering of a table without rows or columns.
const Empty = topLeft + topRight + "\n" + bottomLeft + bottomRight

// MeasureFunc returns the printable width of a styled string.
type MeasureFunc func(string) int

// Option configures a Table.
type Option func(*Table)

// WithMeasure replaces the width measure used to size columns.
func WithMeasure(measure MeasureFunc) Option {
	return func(t *Table) {
		if measure != nil {
			t.measure = measure
		}
	}
}

// Table is an ordered collection of rows of styled cells. A Table is not
// safe for concurrent mutation.
type Table struct {
	rows    [][]string
	measure MeasureFunc
}

// New creates an empty table measuring cells with markup.VisibleWidth.
func New(opts ...Option) *Table {
	t := &Table{measure: markup.VisibleWidth}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddRow styles each cell and appends the row. Rows may differ in length.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = markup.Apply(cell)
	}
	t.rows = append(t.rows, row)
	return t
}

// AddRows appends each row in order.
func (t *Table) AddRows(rows [][]string) *Table {
	for _, row := range rows {
		t.AddRow(row...)
	}
	return t
}

// Rows returns the number of rows added.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Columns returns the length of the longest row.
func (t *Table) Columns() int {
	cols := 0
	for _, row := range t.rows {
		cols = max(cols, len(row))
	}
	return cols
}

// Render draws the table. Lines are separated by "\n" with no trailing
// newline.
func (t *Table) Render() string {
	cols := t.Columns()
	if cols == 0 {
		return Empty
	}

	widths := t.columnWidths(cols)

	var b strings.Builder
	b.WriteString(rule(widths, topLeft, horizontal, topJoin, topRight))
	for i, row := range t.rows {
		b.WriteByte('\n')
		if i > 0 {
			b.WriteString(rule(widths, midLeft, dashed, midJoin, midRight))
			b.WriteByte('\n')
		}
		t.writeRow(&b, row, widths)
	}
	b.WriteByte('\n')
	b.WriteString(rule(widths, bottomLeft, horizontal, bottomJoin, bottomRight))
	return b.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Render())
	return int64(n), err
}

func (t *Table) columnWidths(cols int) []int {
	widths := make([]int, cols)
	for j := range widths {
		widths[j] = 1
	}
	for _, row := range t.rows {
		for j, cell := range row {
			for _, line := range cellLines(cell) {
				widths[j] = max(widths[j], t.measure(line))
			}
		}
	}
	return widths
}

func (t *Table) writeRow(b *strings.Builder, row []string, widths []int) {
	cells := make([][]string, len(widths))
	height := 1
	for j := range widths {
		if j < len(row) {
			cells[j] = cellLines(row[j])
		}
		height = max(height, len(cells[j]))
	}

	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(border)
		for j, width := range widths {
			if j > 0 {
				b.WriteString(divider)
			}
			var line string
			if i < len(cells[j]) {
				line = cells[j][i]
			}
			b.WriteByte(' ')
			b.WriteString(line)
			b.WriteString(strings.Repeat(" ", max(width-t.measure(line), 0)+1))
		}
		b.WriteString(border)
	}
}

// cellLines splits a styled cell on newlines. Styles still open at the end
// of a line are reset there and reopened on the next line so they never
// reach the borders.
func cellLines(cell string) []string {
	if !strings.Contains(cell, "\n") {
		return []string{cell}
	}

	lines := strings.Split(cell, "\n")
	active := ""
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		styled := active + line
		active = openStyles(active, line)
		if active != "" {
			styled += markup.Reset
		}
		lines[i] = styled
	}
	return lines
}

// openStyles returns the escape sequences in effect after line, starting
// from those in effect before it. A reset clears them.
func openStyles(active, line string) string {
	for {
		start := strings.Index(line, "\x1b[")
		if start < 0 {
			return active
		}
		end := strings.IndexByte(line[start:], 'm')
		if end < 0 {
			return active
		}
		seq := line[start : start+end+1]
		if seq == markup.Reset {
			active = ""
		} else {
			active += seq
		}
		line = line[start+end+1:]
	}
}

// rule draws a horizontal line spanning every column plus its padding.
func rule(widths []int, left, fill, join, right string) string {
	segments := make([]string, len(widths))
	for j, width := range widths {
		segments[j] = strings.Repeat(fill, width+2)
	}
	return left + strings.Join(segments, join) + right
}
