package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
	CSV                  // Comma-separated values with a header line
	JSON                 // Array of objects keyed by header
)

var modeNames = map[Mode]string{
	ASCII:    "ascii",
	Markdown: "markdown",
	CSV:      "csv",
	JSON:     "json",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps an --output value to a Mode. Matching is case-insensitive;
// "md" is accepted for Markdown and "" means ASCII.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii", "table":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	}
	return ASCII, fmt.Errorf("output %q: want ascii, markdown, csv or json", s)
}

// ColumnAlign specifies the horizontal alignment for a column.
type ColumnAlign int

const (
	AlignDefault ColumnAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ColumnConfig controls per-column formatting.
type ColumnConfig struct {
	Number   int         // 1-based column index
	Align    ColumnAlign // horizontal alignment
	MaxWidth int         // truncate or wrap content beyond this width (0 = unlimited)
}

// TableBuilder is the project-owned table abstraction.
// Build a table once; render it via the Mode set at creation.
type TableBuilder interface {
	// Header sets the column headers.
	Header(cols ...string)
	// Row appends a data row. Values are converted to strings via fmt Sprint.
	Row(vals ...any)
	// Footer appends a footer row (e.g. totals). JSON output omits it.
	Footer(vals ...any)
	// Columns applies per-column configuration (alignment, max width).
	Columns(cfgs ...ColumnConfig)
	// String renders the table in the configured Mode.
	String() string
}

// NewTable returns a TableBuilder that renders in the given Mode.
func NewTable(m Mode) TableBuilder {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &prettyAdapter{writer: w, mode: m}
}

// prettyAdapter wraps go-pretty/v6/table.Writer behind the TableBuilder interface.
// It keeps its own copy of header and rows for JSON rendering.
type prettyAdapter struct {
	writer table.Writer
	mode   Mode
	header []string
	rows   [][]any
}

func (a *prettyAdapter) Header(cols ...string) {
	a.header = append([]string(nil), cols...)
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	a.writer.AppendHeader(row)
}

func (a *prettyAdapter) Row(vals ...any) {
	a.rows = append(a.rows, append([]any(nil), vals...))
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendRow(row)
}

func (a *prettyAdapter) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendFooter(row)
}

func (a *prettyAdapter) Columns(cfgs ...ColumnConfig) {
	goCfgs := make([]table.ColumnConfig, len(cfgs))
	for i, c := range cfgs {
		goCfgs[i] = table.ColumnConfig{
			Number:   c.Number,
			Align:    toTextAlign(c.Align),
			WidthMax: c.MaxWidth,
		}
	}
	a.writer.SetColumnConfigs(goCfgs)
}

func (a *prettyAdapter) String() string {
	switch a.mode {
	case Markdown:
		return a.writer.RenderMarkdown()
	case CSV:
		return a.writer.RenderCSV()
	case JSON:
		return a.renderJSON()
	default:
		return a.writer.Render()
	}
}

// renderJSON writes one object per row with keys in header order. Cells
// beyond the header are keyed by their 1-based column number.
func (a *prettyAdapter) renderJSON() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range a.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  {")
		for j, v := range row {
			if j > 0 {
				buf.WriteString(", ")
			}
			key := fmt.Sprint(j + 1)
			if j < len(a.header) {
				key = a.header[j]
			}
			writeJSON(&buf, key)
			buf.WriteString(": ")
			writeJSON(&buf, v)
		}
		buf.WriteByte('}')
	}
	if len(a.rows) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
	return buf.String()
}

func writeJSON(buf *bytes.Buffer, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprint(v))
	}
	buf.Write(b)
}

func toTextAlign(a ColumnAlign) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	case AlignCenter:
		return text.AlignCenter
	default:
		return text.AlignDefault
	}
}
