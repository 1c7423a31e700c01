// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab does layout of text-based tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	cells []textCell
	cols  int

	curRow, curCol int
}

type textCell struct {
	row, col   int
	value      string
	leftMargin string
	alignment  align
}

// A CellOption adjusts the layout of one cell.
type CellOption func(c *textCell)

// LeftMargin sets the text emitted immediately to the left of a
// cell, in place of the default two-space separator.
func LeftMargin(x string) CellOption {
	return func(c *textCell) {
		c.leftMargin = x
	}
}

// Alignment options.
var (
	Left   CellOption = func(c *textCell) { c.alignment = alignLeft }
	Center CellOption = func(c *textCell) { c.alignment = alignCenter }
	Right  CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (a align) pad(s string, w int) string {
	gap := w - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	switch a {
	default:
		return s + strings.Repeat(" ", gap)
	case alignCenter:
		l := gap / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", gap-l)
	case alignRight:
		return strings.Repeat(" ", gap) + s
	}
}

// Row starts a new row.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 || t.curCol > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Col skips to column col of the current row. It panics if col is
// before the current column.
func (t *Table) Col(col int) *Table {
	if col < t.curCol {
		panic(fmt.Sprintf("cannot move back from column %d to column %d", t.curCol, col))
	}
	t.curCol = col
	return t
}

// CurCol returns the column the next cell will land in.
func (t *Table) CurCol() int {
	return t.curCol
}

// Cell emits a cell with the given value at the current position and
// advances to the next column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	c := textCell{row: t.curRow, col: t.curCol, value: value, leftMargin: "  "}
	for _, o := range opts {
		o(&c)
	}
	t.cells = append(t.cells, c)
	t.curCol++
	if t.curCol > t.cols {
		t.cols = t.curCol
	}
	return t
}

// Format lays the table out and writes it to w.
func (t *Table) Format(w io.Writer) error {
	// Compute column widths, including each cell's left margin in
	// the width of the column to its left's gap.
	widths := make([]int, t.cols)
	margins := make([]int, t.cols)
	for _, c := range t.cells {
		if n := utf8.RuneCountInString(c.value); n > widths[c.col] {
			widths[c.col] = n
		}
		if n := utf8.RuneCountInString(c.leftMargin); n > margins[c.col] {
			margins[c.col] = n
		}
	}

	nRows := 0
	if len(t.cells) > 0 {
		nRows = t.cells[len(t.cells)-1].row + 1
	}
	rows := make([][]*textCell, nRows)
	for i := range t.cells {
		c := &t.cells[i]
		rows[c.row] = append(rows[c.row], c)
	}

	buf := new(strings.Builder)
	for _, row := range rows {
		buf.Reset()
		col := 0
		for _, c := range row {
			for col < c.col {
				if col > 0 {
					buf.WriteString(strings.Repeat(" ", margins[col]))
				}
				buf.WriteString(strings.Repeat(" ", widths[col]))
				col++
			}
			if col > 0 {
				m := c.leftMargin
				for utf8.RuneCountInString(m) < margins[col] {
					m += " "
				}
				buf.WriteString(m)
			}
			buf.WriteString(c.alignment.pad(c.value, widths[col]))
			col++
		}
		line := strings.TrimRight(buf.String(), " ")
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
