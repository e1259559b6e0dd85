// Package render draws fixed-width text tables with box-drawing characters.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// MinWidth is the narrowest table width accepted by the report tables.
const MinWidth = 61

// ClampWidth returns width, raised to MinWidth if it is smaller.
func ClampWidth(width int) int {
	return max(width, MinWidth)
}

// Align is the padding direction of a cell.
type Align int

const (
	// Left pads on the right.
	Left Align = iota
	// Right pads on the left.
	Right
	// Zero pads on the left with zeros, after any sign.
	Zero
)

// Cell truncates s to width runes and pads it according to align.
func Cell(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) > width {
		s = string([]rune(s)[:width])
	}
	pad := width - utf8.RuneCountInString(s)
	if pad == 0 {
		return s
	}

	switch align {
	case Right:
		return strings.Repeat(" ", pad) + s
	case Zero:
		sign := ""
		if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
			sign, s = s[:1], s[1:]
		}
		return sign + strings.Repeat("0", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Box draws the frame of a table with the given column widths.
type Box struct {
	widths []int
	filler []string
}

// NewBox creates a Box for columns of the given widths.
func NewBox(widths ...int) Box {
	filler := make([]string, len(widths))
	for i, w := range widths {
		filler[i] = strings.Repeat("─", w)
	}
	return Box{widths: widths, filler: filler}
}

func (b Box) fill(left, center, right string, cells []string) string {
	return left + strings.Join(cells, center) + right
}

// Top returns the top border.
func (b Box) Top() string { return b.fill("┎", "┬", "┒", b.filler) }

// Center returns a divider between rows.
func (b Box) Center() string { return b.fill("┠", "┼", "┨", b.filler) }

// Bottom returns the bottom border.
func (b Box) Bottom() string { return b.fill("┖", "┴", "┚", b.filler) }

// Content returns a row. Cells are expected to be padded to their column width already.
func (b Box) Content(cells []string) string { return b.fill("┃", "│", "┃", cells) }

// Column describes one table column.
type Column struct {
	Title string
	Width int
	Align Align
}

// Table is a box-framed table.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// AddRow appends a row. Missing cells are left empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t Table) row(cells []string) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		var s string
		if i < len(cells) {
			s = cells[i]
		}
		out[i] = Cell(s, c.Width, c.Align)
	}
	return out
}

// Lines renders the table: top border, header, divider, rows, bottom border.
// The divider is left out when there are no rows.
func (t Table) Lines() []string {
	widths := make([]int, len(t.Columns))
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = c.Width
		header[i] = Cell(c.Title, c.Width, Left)
	}
	box := NewBox(widths...)

	lines := []string{box.Top(), box.Content(header)}
	if len(t.Rows) > 0 {
		lines = append(lines, box.Center())
	}
	for _, r := range t.Rows {
		lines = append(lines, box.Content(t.row(r)))
	}
	return append(lines, box.Bottom())
}

// Render writes the table to w.
func (t Table) Render(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
