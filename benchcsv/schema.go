// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads tabular benchmark results in CSV form.
//
// Sources are described by an explicit Schema that declares which
// columns are categorical dimensions and which are numeric
// measurements. The reader coerces numeric cells, splits composite
// dimension columns, and tolerates row-level damage: a cell that
// fails coercion marks only that measurement invalid, and a row
// whose composite column doesn't split is dropped and counted. Only
// a schema-level mismatch (a declared column missing from the
// header) is fatal for a source.
//
// This package is designed to be used with the higher-level packages
// benchagg and benchtab.
package benchcsv

import "fmt"

// DefaultSep is the separator used for composite dimension columns
// when a Split doesn't specify one.
const DefaultSep = "__"

// A Schema declares the columns of a tabular benchmark source.
//
// Dims name categorical columns that are carried through verbatim.
// Fields name numeric columns that are coerced to float64. Splits
// name composite columns whose cell values encode several dimensions
// joined by a separator; they are split at ingestion time.
type Schema struct {
	// Dims is the declared categorical dimension columns.
	Dims []string

	// Fields is the declared numeric measurement columns.
	Fields []string

	// Splits is the declared composite dimension columns.
	Splits []Split
}

// A Split declares a composite dimension column. The cell value is
// split on Sep and must yield exactly len(Into) parts; each part
// becomes the value of the correspondingly named dimension.
type Split struct {
	// Column is the name of the composite column in the source.
	Column string

	// Sep is the separator between parts. If empty, DefaultSep is
	// used.
	Sep string

	// Into names the dimensions the parts map to, in order.
	Into []string
}

func (s Split) sep() string {
	if s.Sep == "" {
		return DefaultSep
	}
	return s.Sep
}

// DimNames returns the dimension names of Records produced under s:
// the plain dimension columns in declared order, followed by the
// constituent dimensions of each Split in declared order.
func (s *Schema) DimNames() []string {
	names := make([]string, 0, len(s.Dims))
	names = append(names, s.Dims...)
	for _, sp := range s.Splits {
		names = append(names, sp.Into...)
	}
	return names
}

// validate checks s for internal consistency.
func (s *Schema) validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema declares no numeric fields")
	}
	seen := make(map[string]bool)
	for _, name := range s.DimNames() {
		if seen[name] {
			return fmt.Errorf("duplicate dimension %q in schema", name)
		}
		seen[name] = true
	}
	for _, name := range s.Fields {
		if seen[name] {
			return fmt.Errorf("column %q declared as both dimension and field", name)
		}
		seen[name] = true
	}
	for _, sp := range s.Splits {
		if len(sp.Into) == 0 {
			return fmt.Errorf("split column %q maps to no dimensions", sp.Column)
		}
	}
	return nil
}
