// Package report renders post-run register and memory tables.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Style is a table drawing style.
type Style int

const (
	STYLE_AUTO  = Style(0) // Grid on a terminal, plain otherwise.
	STYLE_GRID  = Style(1) // Box drawing grid.
	STYLE_PLAIN = Style(2) // ASCII columns.
)

// HEADER_PADDING is the minimum space around a column header.
const HEADER_PADDING = 2

// StyleFor resolves STYLE_AUTO for the given output.
func StyleFor(w io.Writer) Style {
	file, ok := w.(*os.File)
	if ok && term.IsTerminal(int(file.Fd())) {
		return STYLE_GRID
	}

	return STYLE_PLAIN
}

// Table is a set of right aligned columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row of values, formatted with %v.
func (tbl *Table) AddRow(values ...any) {
	row := make([]string, len(values))
	for n, value := range values {
		row[n] = fmt.Sprintf("%v", value)
	}
	tbl.Rows = append(tbl.Rows, row)
}

// widths returns the display width of each column.
func (tbl *Table) widths() (widths []int) {
	widths = make([]int, len(tbl.Headers))
	for n, header := range tbl.Headers {
		widths[n] = runewidth.StringWidth(header) + HEADER_PADDING
	}
	for _, row := range tbl.Rows {
		for n, cell := range row {
			if n < len(widths) {
				widths[n] = max(widths[n], runewidth.StringWidth(cell))
			}
		}
	}
	return
}

// rule draws a horizontal grid line.
func rule(widths []int, left, fill, mid, right string) string {
	var parts []string
	for _, width := range widths {
		parts = append(parts, strings.Repeat(fill, width+2))
	}
	return left + strings.Join(parts, mid) + right + "\n"
}

// line draws a row of cells.
func line(widths []int, cells []string, sep, edge string) string {
	var parts []string
	for n, width := range widths {
		var cell string
		if n < len(cells) {
			cell = cells[n]
		}
		parts = append(parts, runewidth.FillLeft(cell, width))
	}
	if len(edge) == 0 {
		return strings.Join(parts, sep) + "\n"
	}
	return edge + " " + strings.Join(parts, " "+sep+" ") + " " + edge + "\n"
}

// Render returns the table drawn in style.
func (tbl *Table) Render(style Style) string {
	widths := tbl.widths()

	var text strings.Builder
	switch style {
	case STYLE_GRID:
		text.WriteString(rule(widths, "╒", "═", "╤", "╕"))
		text.WriteString(line(widths, tbl.Headers, "│", "│"))
		if len(tbl.Rows) > 0 {
			text.WriteString(rule(widths, "╞", "═", "╪", "╡"))
		}
		for n, row := range tbl.Rows {
			if n > 0 {
				text.WriteString(rule(widths, "├", "─", "┼", "┤"))
			}
			text.WriteString(line(widths, row, "│", "│"))
		}
		text.WriteString(rule(widths, "╘", "═", "╧", "╛"))
	default:
		dashes := make([]string, len(widths))
		for n, width := range widths {
			dashes[n] = strings.Repeat("-", width)
		}
		text.WriteString(line(widths, tbl.Headers, "  ", ""))
		text.WriteString(line(widths, dashes, "  ", ""))
		for _, row := range tbl.Rows {
			text.WriteString(line(widths, row, "  ", ""))
		}
	}

	return text.String()
}
