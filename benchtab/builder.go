// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab presents grouped benchmark statistics as
// two-dimensional comparison tables.
//
// A Builder pivots a record set over a row projection and a column
// projection, reducing one numeric field within each (row, column)
// cell. Only combinations actually observed in the input become
// cells; an absent cell means "no data", which every emitter
// preserves as a blank rather than a zero.
package benchtab

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchcsv"
)

// A Reducer reduces the measurements of one cell to the single value
// the table displays.
type Reducer struct {
	Name   string
	Reduce func(stats.Sample) float64
}

// The built-in reducers.
var (
	Mean = Reducer{"mean", func(s stats.Sample) float64 { return s.Mean() }}
	Min  = Reducer{"min", func(s stats.Sample) float64 { min, _ := s.Bounds(); return min }}
	Max  = Reducer{"max", func(s stats.Sample) float64 { _, max := s.Bounds(); return max }}
)

// ReducerByName looks up a built-in reducer by its name.
func ReducerByName(name string) (Reducer, bool) {
	for _, r := range []Reducer{Mean, Min, Max} {
		if r.Name == name {
			return r, true
		}
	}
	return Reducer{}, false
}

// A Builder collects records into a comparison Table.
type Builder struct {
	rowBy, colBy *benchagg.Projection
	field        string
	reducer      Reducer

	// Observed row and col Keys. Rows and columns materialize
	// only when at least one valid measurement lands in them, so
	// the finished table covers the observed cross product, not
	// the space of all possible values.
	rows map[benchagg.Key]struct{}
	cols map[benchagg.Key]struct{}

	// cells maps from (row, col) to the valid measurements
	// observed for that combination.
	cells map[TableKey][]float64
}

// NewBuilder creates a Builder that pivots the named numeric field
// over the rowBy and colBy projections, reducing each cell with
// reducer. A zero reducer means Mean.
func NewBuilder(rowBy, colBy *benchagg.Projection, field string, reducer Reducer) *Builder {
	if reducer.Reduce == nil {
		reducer = Mean
	}
	return &Builder{
		rowBy: rowBy, colBy: colBy,
		field:   field,
		reducer: reducer,
		rows:    make(map[benchagg.Key]struct{}),
		cols:    make(map[benchagg.Key]struct{}),
		cells:   make(map[TableKey][]float64),
	}
}

// Add adds the valid measurements of every record in rs to the
// Builder. Records whose value for the builder's field is invalid
// contribute nothing. Add fails only on a schema mismatch.
func (b *Builder) Add(rs *benchcsv.RecordSet) error {
	if !rs.HasField(b.field) {
		return fmt.Errorf("numeric field %q not declared by record set", b.field)
	}
	for _, dim := range append(b.rowBy.Dims(), b.colBy.Dims()...) {
		if !rs.HasDim(dim) {
			return fmt.Errorf("dimension %q not declared by record set", dim)
		}
	}

	for i := 0; i < rs.Len(); i++ {
		rec := rs.At(i)
		v, ok := rec.Value(b.field)
		if !ok {
			continue
		}
		rowKey := b.rowBy.Project(rec)
		colKey := b.colBy.Project(rec)
		cellKey := TableKey{rowKey, colKey}

		b.rows[rowKey] = struct{}{}
		b.cols[colKey] = struct{}{}
		b.cells[cellKey] = append(b.cells[cellKey], v)
	}
	return nil
}

// ToTable finalizes the Builder into a Table. Row and column keys
// are sorted, so the table layout is reproducible regardless of
// input order.
func (b *Builder) ToTable() *Table {
	t := &Table{
		Field:   b.field,
		Reducer: b.reducer.Name,
		RowDims: b.rowBy.Dims(),
		ColDims: b.colBy.Dims(),
		Rows:    mapKeys(b.rows),
		Cols:    mapKeys(b.cols),
		Cells:   make(map[TableKey]*Cell, len(b.cells)),
	}
	for k, xs := range b.cells {
		t.Cells[k] = &Cell{
			Value: b.reducer.Reduce(stats.Sample{Xs: xs}),
			Agg:   benchagg.NewAggregate(xs),
		}
	}
	return t
}

func mapKeys(m map[benchagg.Key]struct{}) []benchagg.Key {
	keys := make([]benchagg.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	benchagg.SortKeys(keys)
	return keys
}
