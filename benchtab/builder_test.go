// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"reflect"
	"strings"
	"testing"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchcsv"
)

func readSet(t *testing.T, data string) *benchcsv.RecordSet {
	t.Helper()
	s := &benchcsv.Schema{
		Dims:   []string{"Implementation", "Metric"},
		Fields: []string{"Average_Time_ms"},
	}
	rs, err := benchcsv.ReadAll(s, strings.NewReader(data), "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rs
}

// sparse is a record set observing three of the four possible
// (Implementation, Metric) combinations. (B, Y) was never measured
// and must stay missing all the way through every output.
const sparse = `Implementation,Metric,Average_Time_ms
A,X,10
A,Y,20
B,X,30
`

func sparseTable(t *testing.T) *Table {
	t.Helper()
	b := NewBuilder(benchagg.NewProjection("Implementation"), benchagg.NewProjection("Metric"), "Average_Time_ms", Mean)
	if err := b.Add(readSet(t, sparse)); err != nil {
		t.Fatal(err)
	}
	return b.ToTable()
}

func keyStrings(keys []benchagg.Key) []string {
	var out []string
	for _, k := range keys {
		out = append(out, k.StringValues())
	}
	return out
}

func TestBuilderObservedOnly(t *testing.T) {
	tab := sparseTable(t)

	if got, want := keyStrings(tab.Rows), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Rows = %q, want %q", got, want)
	}
	if got, want := keyStrings(tab.Cols), []string{"X", "Y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Cols = %q, want %q", got, want)
	}
	if got, want := len(tab.Cells), 3; got != want {
		t.Fatalf("got %d cells, want %d", got, want)
	}

	// The unobserved combination must be absent, not zero.
	bKey, yKey := tab.Rows[1], tab.Cols[1]
	if _, ok := tab.Cells[TableKey{bKey, yKey}]; ok {
		t.Error("cell (B, Y) should be missing")
	}

	cell := tab.Cells[TableKey{tab.Rows[0], tab.Cols[0]}]
	if cell == nil || cell.Value != 10 || cell.Agg.Count != 1 {
		t.Errorf("cell (A, X) = %+v, want value 10, count 1", cell)
	}
}

func TestBuilderDeterministicOrder(t *testing.T) {
	shuffled := `Implementation,Metric,Average_Time_ms
B,X,30
A,Y,20
A,X,10
`
	b := NewBuilder(benchagg.NewProjection("Implementation"), benchagg.NewProjection("Metric"), "Average_Time_ms", Mean)
	if err := b.Add(readSet(t, shuffled)); err != nil {
		t.Fatal(err)
	}
	tab := b.ToTable()

	want := sparseTable(t)
	if !reflect.DeepEqual(keyStrings(tab.Rows), keyStrings(want.Rows)) {
		t.Errorf("Rows differ across input orders: %q vs %q", keyStrings(tab.Rows), keyStrings(want.Rows))
	}
	if !reflect.DeepEqual(keyStrings(tab.Cols), keyStrings(want.Cols)) {
		t.Errorf("Cols differ across input orders: %q vs %q", keyStrings(tab.Cols), keyStrings(want.Cols))
	}
}

func TestReducers(t *testing.T) {
	data := `Implementation,Metric,Average_Time_ms
A,X,3
A,X,7
`
	for _, test := range []struct {
		reducer Reducer
		want    float64
	}{
		{Mean, 5},
		{Min, 3},
		{Max, 7},
	} {
		b := NewBuilder(benchagg.NewProjection("Implementation"), benchagg.NewProjection("Metric"), "Average_Time_ms", test.reducer)
		if err := b.Add(readSet(t, data)); err != nil {
			t.Fatal(err)
		}
		tab := b.ToTable()
		cell := tab.Cells[TableKey{tab.Rows[0], tab.Cols[0]}]
		if cell.Value != test.want {
			t.Errorf("%s: got %v, want %v", test.reducer.Name, cell.Value, test.want)
		}
	}
}

func TestReducerByName(t *testing.T) {
	if r, ok := ReducerByName("min"); !ok || r.Name != "min" {
		t.Errorf("ReducerByName(min) = %v, %v", r.Name, ok)
	}
	if _, ok := ReducerByName("median"); ok {
		t.Error("ReducerByName(median) should fail")
	}
}

func TestBuilderSchemaMismatch(t *testing.T) {
	rs := readSet(t, sparse)
	b := NewBuilder(benchagg.NewProjection("Implementation"), benchagg.NewProjection("Metric"), "Memory_MB", Mean)
	if err := b.Add(rs); err == nil {
		t.Error("expected error for undeclared field")
	}
	b = NewBuilder(benchagg.NewProjection("DataType"), benchagg.NewProjection("Metric"), "Average_Time_ms", Mean)
	if err := b.Add(rs); err == nil {
		t.Error("expected error for undeclared dimension")
	}
}

func TestBuilderInvalidCellsIgnored(t *testing.T) {
	data := `Implementation,Metric,Average_Time_ms
A,X,10
B,Y,bad
`
	b := NewBuilder(benchagg.NewProjection("Implementation"), benchagg.NewProjection("Metric"), "Average_Time_ms", Mean)
	if err := b.Add(readSet(t, data)); err != nil {
		t.Fatal(err)
	}
	tab := b.ToTable()
	// The invalid record must not materialize its row, column, or
	// cell.
	if got := keyStrings(tab.Rows); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Rows = %q, want [A]", got)
	}
	if got := keyStrings(tab.Cols); !reflect.DeepEqual(got, []string{"X"}) {
		t.Errorf("Cols = %q, want [X]", got)
	}
	if len(tab.Cells) != 1 {
		t.Errorf("got %d cells, want 1", len(tab.Cells))
	}
}
