// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A SchemaError reports that a source's header is missing a column
// declared by the Schema. It is fatal for that source: without the
// column there is no safe way to coerce the remaining rows.
type SchemaError struct {
	FileName string
	Column   string
	Msg      string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: column %q: %s", e.FileName, e.Column, e.Msg)
}

// A Reader reads records from one CSV source under a declared
// Schema.
//
// Its API is modeled on bufio.Scanner. The Reader retains ownership
// of the Record it returns; a caller that needs to retain a Record
// across calls to Scan must Clone it.
type Reader struct {
	schema *Schema
	idx    *recordIndex

	cr       *csv.Reader
	fileName string
	line     int

	// Column positions in the source, resolved from the header on
	// the first Scan.
	dimCol   []int
	fieldCol []int
	splitCol []int

	started bool
	rec     Record
	err     error

	dropped int
	invalid int
}

// NewReader constructs a reader that parses CSV records from r under
// schema s. fileName is used in error messages; it is purely
// diagnostic.
func NewReader(s *Schema, r io.Reader, fileName string) *Reader {
	cr := csv.NewReader(r)
	// Row-level damage is handled per record, not by the CSV layer.
	cr.FieldsPerRecord = -1
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{
		schema:   s,
		idx:      newRecordIndex(s),
		cr:       cr,
		fileName: fileName,
	}
}

// start validates the schema and resolves declared columns against
// the header row. A source with no header at all yields io.EOF here,
// which Scan reports as a normal empty source.
func (r *Reader) start() error {
	if err := r.schema.validate(); err != nil {
		return err
	}
	hdr, err := r.cr.Read()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("%s: reading header: %w", r.fileName, err)
	}
	r.line++

	pos := make(map[string]int, len(hdr))
	for i, name := range hdr {
		pos[strings.TrimSpace(name)] = i
	}
	find := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, &SchemaError{r.fileName, name, "not in header"}
		}
		return i, nil
	}
	for _, name := range r.schema.Dims {
		i, err := find(name)
		if err != nil {
			return err
		}
		r.dimCol = append(r.dimCol, i)
	}
	for _, name := range r.schema.Fields {
		i, err := find(name)
		if err != nil {
			return err
		}
		r.fieldCol = append(r.fieldCol, i)
	}
	for _, sp := range r.schema.Splits {
		i, err := find(sp.Column)
		if err != nil {
			return err
		}
		r.splitCol = append(r.splitCol, i)
	}
	return nil
}

// Scan advances the reader to the next record and reports whether
// one was read. Rows that cannot be used (composite column doesn't
// split, row too short, CSV-level damage) are dropped and counted,
// not returned as errors. When Scan returns false the caller should
// check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		if err := r.start(); err != nil {
			if err != io.EOF {
				r.err = err
			}
			return false
		}
	}

	for {
		row, err := r.cr.Read()
		if err == io.EOF {
			return false
		}
		r.line++
		if err != nil {
			// A parse error is row-level damage: drop the row and
			// keep going. Anything else is a failure of the source
			// itself and must stop the read, or a truncated set
			// would pass for a complete one.
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.dropped++
				continue
			}
			r.err = fmt.Errorf("%s: %w", r.fileName, err)
			return false
		}

		cell := func(i int) (string, bool) {
			if i >= len(row) {
				return "", false
			}
			return strings.TrimSpace(row[i]), true
		}

		dims := make([]string, 0, len(r.idx.dims))
		short := false
		for _, i := range r.dimCol {
			v, ok := cell(i)
			if !ok {
				short = true
				break
			}
			dims = append(dims, v)
		}
		if !short {
			for si, i := range r.splitCol {
				sp := r.schema.Splits[si]
				v, ok := cell(i)
				if !ok {
					short = true
					break
				}
				parts := strings.Split(v, sp.sep())
				if len(parts) != len(sp.Into) {
					short = true
					break
				}
				dims = append(dims, parts...)
			}
		}
		if short {
			r.dropped++
			continue
		}

		vals := make([]Value, len(r.fieldCol))
		for fi, i := range r.fieldCol {
			v, ok := cell(i)
			if ok {
				f, err := strconv.ParseFloat(v, 64)
				if err == nil {
					vals[fi] = Value{f, true}
					continue
				}
			}
			r.invalid++
		}

		r.rec = Record{
			idx:      r.idx,
			dims:     dims,
			vals:     vals,
			fileName: r.fileName,
			line:     r.line,
		}
		return true
	}
}

// Record returns the record read by the latest call to Scan. The
// Reader owns the returned Record; use Clone to retain it.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the first fatal error encountered by the Reader, or
// nil if it stopped at EOF. Row-level damage is never reported here;
// see Dropped and Invalid.
func (r *Reader) Err() error {
	return r.err
}

// Dropped returns the number of rows discarded so far.
func (r *Reader) Dropped() int {
	return r.dropped
}

// Invalid returns the number of numeric cells that failed coercion
// so far.
func (r *Reader) Invalid() int {
	return r.invalid
}

// ReadAll reads every record from one CSV source into a RecordSet.
// An entirely empty source (or one containing only a header) yields
// an empty RecordSet and no error; callers must handle the empty
// case explicitly.
func ReadAll(s *Schema, ior io.Reader, fileName string) (*RecordSet, error) {
	r := NewReader(s, ior, fileName)
	rs := &RecordSet{idx: r.idx}
	for r.Scan() {
		rs.recs = append(rs.recs, *r.Record().Clone())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	rs.Dropped = r.Dropped()
	rs.Invalid = r.Invalid()
	return rs, nil
}
