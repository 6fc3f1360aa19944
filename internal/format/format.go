// Package format renders briefs and validation reports as terminal or
// Markdown tables for the CLI.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode selects the rendering: fixed-width terminal output or
// GitHub-flavoured Markdown.
type Mode int

const (
	ASCII Mode = iota
	Markdown
)

// ColumnConfig controls one column's layout. Number is 1-based.
// Center is meant for the short 1-5 score columns; free-text columns
// stay left-aligned and wrap at MaxWidth.
type ColumnConfig struct {
	Number   int
	Center   bool
	MaxWidth int // wrap content beyond this width (0 = unlimited)
}

// Table accumulates header and rows, then renders them once in the
// Mode fixed at construction.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns an empty Table rendering in the given Mode.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column titles.
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends one data row. Values render via fmt.Sprint.
func (t *Table) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
}

// Columns applies per-column layout.
func (t *Table) Columns(cfgs ...ColumnConfig) {
	out := make([]table.ColumnConfig, len(cfgs))
	for i, c := range cfgs {
		align := text.AlignDefault
		if c.Center {
			align = text.AlignCenter
		}
		out[i] = table.ColumnConfig{
			Number:   c.Number,
			Align:    align,
			WidthMax: c.MaxWidth,
		}
	}
	t.writer.SetColumnConfigs(out)
}

// String renders the accumulated table.
func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}
