// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"
	"io"
	"sort"

	"github.com/storagebench/benchtab/benchagg"
)

// WriteRanking writes a "best group per outer key" report in a plain
// textual form, one line per outer-key value in sorted order, e.g.
//
//	SELECT         : leaky__small (3.012)
//
// entries is the result of benchagg.BestBy; title and outer label
// the report.
func WriteRanking(w io.Writer, title string, entries map[string]benchagg.RankedEntry) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, rule(len(title))); err != nil {
		return err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := entries[k]
		if _, err := fmt.Fprintf(w, "%-15s: %s (%s)\n", k, e.Key.StringValues(), formatValue(e.Mean)); err != nil {
			return err
		}
	}
	return nil
}

func rule(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
