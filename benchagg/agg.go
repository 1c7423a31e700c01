// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/storagebench/benchtab/benchcsv"
)

// An Aggregate summarizes the valid measurements of one numeric
// field within one group. Count is always >= 1: groups with no valid
// measurements are never materialized.
type Aggregate struct {
	Mean float64
	Min  float64
	Max  float64

	// Std is the sample (N-1) standard deviation. It is only
	// meaningful when HasStd is set; for a single observation it
	// is NaN, since one measurement carries no dispersion
	// information.
	Std    float64
	HasStd bool

	Count int
}

// NewAggregate reduces a non-empty set of measurements. It panics if
// xs is empty.
func NewAggregate(xs []float64) *Aggregate {
	if len(xs) == 0 {
		panic("cannot aggregate zero measurements")
	}
	s := stats.Sample{Xs: xs}
	min, max := s.Bounds()
	a := &Aggregate{
		Mean:  s.Mean(),
		Min:   min,
		Max:   max,
		Std:   math.NaN(),
		Count: len(xs),
	}
	if a.Count > 1 {
		a.Std = s.StdDev()
		a.HasStd = true
	}
	return a
}

// Group partitions rs by equality under p and reduces the named
// numeric field within each partition.
//
// Records whose value for field is invalid are excluded from the
// reduction but remain available to reductions over other fields.
// Partitions in which every record is invalid for field produce no
// Aggregate at all. The result does not depend on the iteration
// order of rs.
//
// Group fails only on a schema mismatch: a projection dimension or
// the field not declared by the record set.
func Group(rs *benchcsv.RecordSet, p *Projection, field string) (map[Key]*Aggregate, error) {
	if !rs.HasField(field) {
		return nil, fmt.Errorf("numeric field %q not declared by record set", field)
	}
	for _, dim := range p.dims {
		if !rs.HasDim(dim) {
			return nil, fmt.Errorf("dimension %q not declared by record set", dim)
		}
	}

	groups := make(map[Key][]float64)
	for i := 0; i < rs.Len(); i++ {
		rec := rs.At(i)
		v, ok := rec.Value(field)
		if !ok {
			continue
		}
		k := p.Project(rec)
		groups[k] = append(groups[k], v)
	}

	out := make(map[Key]*Aggregate, len(groups))
	for k, xs := range groups {
		out[k] = NewAggregate(xs)
	}
	return out, nil
}
