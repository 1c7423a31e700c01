// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import "os"

// ReadFiles reads benchmark records from a sequence of CSV files
// that share a single Schema and merges them into one RecordSet.
// Row-level drop and invalid counts accumulate across files. A
// schema mismatch in any file is fatal for the whole read, matching
// the per-source contract of ReadAll.
func ReadFiles(s *Schema, paths ...string) (*RecordSet, error) {
	idx := newRecordIndex(s)
	rs := &RecordSet{idx: idx}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r := NewReader(s, f, path)
		for r.Scan() {
			rec := *r.Record().Clone()
			rec.idx = idx
			rs.recs = append(rs.recs, rec)
		}
		rs.Dropped += r.Dropped()
		rs.Invalid += r.Invalid()
		if err := r.Err(); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	return rs, nil
}
