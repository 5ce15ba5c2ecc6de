package cli

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/palex/internal/colour"
)

// Table is a plain-text table with columns sized to their widest cell.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var b strings.Builder
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeLine(rule)
	for _, row := range t.rows {
		writeLine(row)
	}
	return b.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// statsTable summarises how a palette was built.
func statsTable(p *colour.Palette) *Table {
	s := p.Stats
	t := NewTable([]string{"Stat", "Value"})
	t.AddRow([]string{"sources", strconv.Itoa(s.Sources)})
	t.AddRow([]string{"raw colours", strconv.Itoa(s.RawColors)})
	t.AddRow([]string{"distinct colours", strconv.Itoa(s.Distinct)})
	t.AddRow([]string{"palette colours", strconv.Itoa(p.Len())})
	if s.Clustered {
		t.AddRow([]string{"iterations", strconv.Itoa(s.Iterations)})
		t.AddRow([]string{"restarts", strconv.Itoa(s.Restarts)})
		t.AddRow([]string{"converged", strconv.FormatBool(s.Converged)})
	}
	return t
}
