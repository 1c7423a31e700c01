// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg computes grouped statistics over benchmark
// record sets and selects best-performing groups.
//
// Records are partitioned by a Projection, an ordered tuple of
// dimension names. Each partition is identified by a Key and reduced
// to an Aggregate. Aggregation reads the record set but never
// mutates it, so independent analyses may run concurrently over one
// set as long as each uses its own Projection.
package benchagg

import (
	"sort"
	"strconv"
	"strings"

	"github.com/storagebench/benchtab/benchcsv"
)

// A Projection is an ordered tuple of dimension names used to
// partition a record set. It interns the Keys it produces, so Keys
// from one Projection can be compared with ==.
//
// A Projection is not safe for concurrent use; concurrent analyses
// should each construct their own.
type Projection struct {
	dims []string
	keys map[string]*keyNode
}

// NewProjection returns a Projection over the given dimension names.
func NewProjection(dims ...string) *Projection {
	return &Projection{
		dims: append([]string(nil), dims...),
		keys: make(map[string]*keyNode),
	}
}

// Dims returns the dimension names of p in order.
func (p *Projection) Dims() []string {
	return append([]string(nil), p.dims...)
}

// Project returns the Key of rec under p.
func (p *Projection) Project(rec *benchcsv.Record) Key {
	vals := make([]string, len(p.dims))
	for i, dim := range p.dims {
		vals[i] = rec.Dim(dim)
	}
	return p.Key(vals...)
}

// Key returns the interned Key for the given dimension values, which
// must correspond 1:1 to p's dimensions.
func (p *Projection) Key(vals ...string) Key {
	if len(vals) != len(p.dims) {
		panic("wrong number of values for projection")
	}
	joined := internKey(vals)
	n := p.keys[joined]
	if n == nil {
		n = &keyNode{proj: p, vals: append([]string(nil), vals...)}
		p.keys[joined] = n
	}
	return Key{n}
}

// internKey encodes a value tuple as a single intern-map key. Each
// value is length-prefixed, so no byte a value may contain can make
// two distinct tuples encode alike.
func internKey(vals []string) string {
	buf := new(strings.Builder)
	for _, v := range vals {
		buf.WriteString(strconv.Itoa(len(v)))
		buf.WriteByte(':')
		buf.WriteString(v)
	}
	return buf.String()
}

// A Key is an immutable tuple of dimension values identifying one
// group. Two Keys are == if they come from the same Projection and
// have identical values.
type Key struct {
	k *keyNode
}

// keyNode is the internal heap-allocated object backing a Key. This
// allows Key itself to be a value type whose equality is determined
// by the pointer equality of the underlying keyNode.
type keyNode struct {
	proj *Projection
	vals []string
}

// IsZero reports whether k is a zeroed Key with no projection and no
// values.
func (k Key) IsZero() bool {
	return k.k == nil
}

// Projection returns the Projection describing Key k.
func (k Key) Projection() *Projection {
	if k.IsZero() {
		return nil
	}
	return k.k.proj
}

// Get returns the value of the named dimension in this Key.
//
// It panics if the dimension is not part of the Key's Projection.
func (k Key) Get(dim string) string {
	if k.IsZero() {
		panic("zero Key has no dimensions")
	}
	for i, d := range k.k.proj.dims {
		if d == dim {
			return k.k.vals[i]
		}
	}
	panic(dim + " is not a dimension of this Key's Projection")
}

// String returns Key as a space-separated sequence of dim:value
// pairs in projection order.
func (k Key) String() string {
	return k.string(true)
}

// StringValues returns Key as a space-separated sequence of values
// in projection order.
func (k Key) StringValues() string {
	return k.string(false)
}

func (k Key) string(dims bool) string {
	if k.IsZero() {
		return "<zero>"
	}
	buf := new(strings.Builder)
	for i, val := range k.k.vals {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		if dims {
			buf.WriteString(k.k.proj.dims[i])
			buf.WriteByte(':')
		}
		buf.WriteString(val)
	}
	return buf.String()
}

// Less reports whether k orders before o, comparing dimension values
// lexicographically in projection order. It panics if k and o have
// different Projections. The order is total and reproducible, which
// makes it suitable both for presentation and for tie-breaking.
func (k Key) Less(o Key) bool {
	if k.k.proj != o.k.proj {
		panic("cannot compare Keys from different Projections")
	}
	return less(k.k.vals, o.k.vals)
}

func less(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// SortKeys sorts a slice of Keys using Key.Less. All Keys must have
// the same Projection.
func SortKeys(keys []Key) {
	if len(keys) == 0 {
		return
	}
	proj := keys[0].Projection()
	for _, k := range keys[1:] {
		if k.Projection() != proj {
			panic("Keys must all have the same Projection")
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return less(keys[i].k.vals, keys[j].k.vals)
	})
}
