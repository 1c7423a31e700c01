// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

// A Value is a single coerced numeric cell. Valid is false if the
// source cell could not be coerced to a float64; the Float64 value
// is meaningless in that case.
type Value struct {
	Float64 float64
	Valid   bool
}

// recordIndex maps dimension and field names to slots in a Record.
// It is shared by all Records ingested under one Schema so that
// Records stay small.
type recordIndex struct {
	dims   []string
	fields []string

	dimPos   map[string]int
	fieldPos map[string]int
}

func newRecordIndex(s *Schema) *recordIndex {
	idx := &recordIndex{
		dims:     s.DimNames(),
		fields:   append([]string(nil), s.Fields...),
		dimPos:   make(map[string]int),
		fieldPos: make(map[string]int),
	}
	for i, name := range idx.dims {
		idx.dimPos[name] = i
	}
	for i, name := range idx.fields {
		idx.fieldPos[name] = i
	}
	return idx
}

// A Record is one measured observation: a tuple of dimension values
// plus one Value per declared numeric field. Records are immutable
// once ingested.
type Record struct {
	idx  *recordIndex
	dims []string
	vals []Value

	fileName string
	line     int
}

// Dim returns the value of the named dimension, or "" if the
// dimension is not declared.
func (r *Record) Dim(name string) string {
	pos, ok := r.idx.dimPos[name]
	if !ok {
		return ""
	}
	return r.dims[pos]
}

// Value returns the measurement for the named field. ok is false if
// the field is not declared or the cell was invalid for this record.
func (r *Record) Value(field string) (val float64, ok bool) {
	pos, present := r.idx.fieldPos[field]
	if !present || !r.vals[pos].Valid {
		return 0, false
	}
	return r.vals[pos].Float64, true
}

// Pos returns the file name and line number this Record was read
// from. For Records not read from a file, it returns "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of Record that shares no mutable state with r.
func (r *Record) Clone() *Record {
	r2 := &Record{
		idx:      r.idx,
		dims:     append([]string(nil), r.dims...),
		vals:     append([]Value(nil), r.vals...),
		fileName: r.fileName,
		line:     r.line,
	}
	return r2
}

// A RecordSet is an ordered sequence of Records sharing a Schema.
// It is never mutated after ingestion, so concurrent readers need no
// locking.
type RecordSet struct {
	idx  *recordIndex
	recs []Record

	// Dropped counts rows discarded during ingestion because a
	// composite column did not split into the declared number of
	// parts, or the row was structurally unreadable.
	Dropped int

	// Invalid counts numeric cells that failed coercion. The
	// owning rows are retained; only the affected field is marked
	// invalid.
	Invalid int
}

// Len returns the number of records in the set.
func (rs *RecordSet) Len() int {
	return len(rs.recs)
}

// At returns the i'th record.
func (rs *RecordSet) At(i int) *Record {
	return &rs.recs[i]
}

// Dims returns the dimension names of records in the set, in schema
// order.
func (rs *RecordSet) Dims() []string {
	return append([]string(nil), rs.idx.dims...)
}

// Fields returns the numeric field names of records in the set, in
// schema order.
func (rs *RecordSet) Fields() []string {
	return append([]string(nil), rs.idx.fields...)
}

// HasDim reports whether the set's schema declares dimension name.
func (rs *RecordSet) HasDim(name string) bool {
	_, ok := rs.idx.dimPos[name]
	return ok
}

// HasField reports whether the set's schema declares numeric field
// name.
func (rs *RecordSet) HasField(name string) bool {
	_, ok := rs.idx.fieldPos[name]
	return ok
}
