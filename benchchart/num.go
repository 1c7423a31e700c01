// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const numPrefixes = `KMGTPEZY`

var numRe = regexp.MustCompile(`^([0-9.]+)([k` + numPrefixes + `]i?)?[bB]?$`)

// parseNum is a fuzzy number parser. It supports common patterns for
// row-count buckets, such as SI prefixes ("10K", "1M") and IEC
// suffixes ("4Ki").
func parseNum(x string) (float64, error) {
	// Try parsing as a regular float.
	v, err := strconv.ParseFloat(x, 64)
	if err == nil {
		return v, nil
	}

	// Try a suffixed number.
	subs := numRe.FindStringSubmatch(x)
	if subs != nil {
		v, err := strconv.ParseFloat(subs[1], 64)
		if err == nil {
			exp := 0
			if len(subs[2]) > 0 {
				pre := subs[2][0]
				if pre == 'k' {
					pre = 'K'
				}
				exp = 1 + strings.IndexByte(numPrefixes, pre)
			}
			if strings.HasSuffix(subs[2], "i") {
				return v * math.Pow(1024, float64(exp)), nil
			}
			return v * math.Pow(1000, float64(exp)), nil
		}
	}

	return 0, strconv.ErrSyntax
}
