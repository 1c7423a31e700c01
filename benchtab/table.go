// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/internal/texttab"
)

// A Table compares aggregated benchmark measurements in a 2D grid.
// Each present cell reduces the measurements with identical row and
// column Keys. A (row, column) combination absent from Cells had no
// valid measurements; emitters render it blank, never as zero.
//
// A Table is never mutated after construction.
type Table struct {
	// Field is the numeric field this table reduces.
	Field string

	// Reducer is the name of the reducer that produced the cell
	// values.
	Reducer string

	// RowDims and ColDims name the dimensions of the row and
	// column keys.
	RowDims, ColDims []string

	// Rows and Cols give the row and column Keys in display
	// order, sorted by Key.
	Rows, Cols []benchagg.Key

	// Cells is the body of the table, keyed by pairs of some Key
	// from Rows and some Key from Cols. Not all pairs are
	// present.
	Cells map[TableKey]*Cell
}

// TableKey is a map key used to index a single cell in a Table.
type TableKey struct {
	Row, Col benchagg.Key
}

// A Cell is a single present cell in a Table.
type Cell struct {
	// Value is the reduced value displayed for this cell.
	Value float64

	// Agg is the full aggregate of the cell's measurements.
	Agg *benchagg.Aggregate
}

// formatValue renders a cell value for text output.
func formatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

// ToText renders t to a textual representation, assuming a
// fixed-width font. Missing cells render as blanks.
func (t *Table) ToText(w io.Writer) error {
	var o texttab.Table

	o.Row()
	o.Cell(strings.Join(t.RowDims, ","))
	for _, col := range t.Cols {
		o.Cell(col.StringValues(), texttab.Right, texttab.LeftMargin(" │ "))
	}

	for _, row := range t.Rows {
		o.Row()
		o.Cell(row.StringValues())
		for i, col := range t.Cols {
			cell, ok := t.Cells[TableKey{row, col}]
			if !ok {
				continue
			}
			o.Col(1 + i)
			o.Cell(formatValue(cell.Value), texttab.Right, texttab.LeftMargin(" │ "))
		}
	}

	if _, err := fmt.Fprintf(w, "%s: %s by %s\n", t.Field, t.Reducer, strings.Join(t.ColDims, ",")); err != nil {
		return err
	}
	return o.Format(w)
}

// ToCSV renders t to CSV format. Missing cells are emitted as empty
// fields so that downstream consumers cannot mistake them for
// measured zeros.
func (t *Table) ToCSV(w io.Writer) error {
	o := csv.NewWriter(w)

	hdr := make([]string, 0, 1+len(t.Cols))
	hdr = append(hdr, strings.Join(t.RowDims, ","))
	for _, col := range t.Cols {
		hdr = append(hdr, col.StringValues())
	}
	o.Write(hdr)

	row := make([]string, 0, len(hdr))
	for _, rowKey := range t.Rows {
		row = append(row[:0], rowKey.StringValues())
		for _, colKey := range t.Cols {
			cell, ok := t.Cells[TableKey{rowKey, colKey}]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(cell.Value))
		}
		o.Write(row)
	}

	o.Flush()
	return o.Error()
}
