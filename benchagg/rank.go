// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import "fmt"

// A Direction states whether smaller or larger means better for a
// metric. Latency- and memory-style metrics minimize; throughput-
// style metrics maximize.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	switch d {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// A RankedEntry is the group selected as extremal for one selection,
// paired with its aggregate mean.
type RankedEntry struct {
	Key  Key
	Mean float64
	Agg  *Aggregate
}

// A NoCandidatesError reports that a selection had no eligible
// groups. Outer names the outer-key value the selection was scoped
// to, or "" for an unscoped selection.
type NoCandidatesError struct {
	Outer string
}

func (e *NoCandidatesError) Error() string {
	if e.Outer == "" {
		return "no candidate groups"
	}
	return fmt.Sprintf("no candidate groups for %q", e.Outer)
}

// SelectBest returns the group whose aggregate mean is extremal
// under dir. Groups whose means are exactly equal tie-break to the
// lexicographically smallest Key, so the result is reproducible
// across runs regardless of map iteration order. An empty groups map
// yields a NoCandidatesError.
func SelectBest(groups map[Key]*Aggregate, dir Direction) (RankedEntry, error) {
	if len(groups) == 0 {
		return RankedEntry{}, &NoCandidatesError{}
	}
	keys := make([]Key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	SortKeys(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if better(groups[k].Mean, groups[best].Mean, dir) {
			best = k
		}
	}
	return RankedEntry{Key: best, Mean: groups[best].Mean, Agg: groups[best]}, nil
}

// better reports whether mean a strictly beats mean b under dir.
// Keeping the comparison strict is what makes ties resolve to the
// earliest (lexicographically smallest) candidate.
func better(a, b float64, dir Direction) bool {
	if dir == Maximize {
		return a > b
	}
	return a < b
}

// BestBy partitions groups by the value of the outer dimension and
// selects the extremal group within each partition. Outer-key values
// that have no groups simply have no entry in the result; they never
// abort selection for the other keys. Callers that need an explicit
// failure for a particular outer key should filter groups to that
// key and call SelectBest, which reports NoCandidatesError.
func BestBy(groups map[Key]*Aggregate, outer string, dir Direction) map[string]RankedEntry {
	parts := make(map[string]map[Key]*Aggregate)
	for k, agg := range groups {
		val := k.Get(outer)
		m := parts[val]
		if m == nil {
			m = make(map[Key]*Aggregate)
			parts[val] = m
		}
		m[k] = agg
	}

	out := make(map[string]RankedEntry, len(parts))
	for val, m := range parts {
		entry, err := SelectBest(m, dir)
		if err != nil {
			// Partitions are built non-empty, so this cannot
			// happen; skip rather than fail the batch.
			continue
		}
		out[val] = entry
	}
	return out
}
