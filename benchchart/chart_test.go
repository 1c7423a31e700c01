// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchcsv"
	"github.com/storagebench/benchtab/benchtab"
)

func testTable(t *testing.T, data string) *benchtab.Table {
	t.Helper()
	s := &benchcsv.Schema{
		Dims:   []string{"Rows", "Implementation"},
		Fields: []string{"Average_Time_ms"},
	}
	rs, err := benchcsv.ReadAll(s, strings.NewReader(data), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	b := benchtab.NewBuilder(benchagg.NewProjection("Rows"), benchagg.NewProjection("Implementation"), "Average_Time_ms", benchtab.Mean)
	if err := b.Add(rs); err != nil {
		t.Fatal(err)
	}
	return b.ToTable()
}

const chartData = `Rows,Implementation,Average_Time_ms
10K,leaky,5.0
10K,ping,3.0
100K,leaky,50.0
1M,leaky,500.0
1M,ping,300.0
`

func TestBar(t *testing.T) {
	pl, err := Bar(testTable(t, chartData), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Title.Text != "Average_Time_ms (mean)" {
		t.Errorf("Title = %q", pl.Title.Text)
	}
}

func TestBarRuns(t *testing.T) {
	tab := testTable(t, chartData)
	// Rows sort to [100K, 10K, 1M]; ping has no 100K cell.
	leaky, ping := tab.Cols[0], tab.Cols[1]

	runs := barRuns(tab, leaky)
	if len(runs) != 1 || runs[0].start != 0 || len(runs[0].vals) != 3 {
		t.Errorf("leaky runs = %+v, want one full run from row 0", runs)
	}

	// The absent cell must be skipped entirely, not filled with a
	// zero-height bar.
	runs = barRuns(tab, ping)
	if len(runs) != 1 || runs[0].start != 1 || len(runs[0].vals) != 2 {
		t.Fatalf("ping runs = %+v, want one run of 2 starting at row 1", runs)
	}
	for _, v := range runs[0].vals {
		if v == 0 {
			t.Errorf("fabricated zero value in run %+v", runs[0].vals)
		}
	}
}

func TestBarLogY(t *testing.T) {
	// With absent cells skipped, a log-scale value axis never sees
	// a fabricated zero.
	if _, err := Bar(testTable(t, chartData), Options{LogY: true}); err != nil {
		t.Fatal(err)
	}
}

func TestLine(t *testing.T) {
	// ping has no 100K cell, so its line breaks there instead of
	// dipping to zero. The chart must still build.
	if _, err := Line(testTable(t, chartData), Options{}); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyTable(t *testing.T) {
	tab := &benchtab.Table{Field: "Average_Time_ms", Reducer: "mean"}
	if _, err := Bar(tab, Options{}); err == nil {
		t.Error("Bar of empty table should fail")
	}
	if _, err := Line(tab, Options{}); err == nil {
		t.Error("Line of empty table should fail")
	}
}

func TestSavePNG(t *testing.T) {
	pl, err := Bar(testTable(t, chartData), Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := SavePNG(pl, Options{}, path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("wrote empty PNG")
	}
}

func TestParseNum(t *testing.T) {
	for _, test := range []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"4.5", 4.5},
		{"10K", 10e3},
		{"10k", 10e3},
		{"1M", 1e6},
		{"4Ki", 4096},
		{"2MB", 2e6},
	} {
		got, err := parseNum(test.in)
		if err != nil {
			t.Errorf("parseNum(%q): %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("parseNum(%q) = %v, want %v", test.in, got, test.want)
		}
	}
	if _, err := parseNum("leaky"); err == nil {
		t.Error("parseNum(leaky) should fail")
	}
}
