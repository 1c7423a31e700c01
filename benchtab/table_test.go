// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"bytes"
	"strings"
	"testing"

	"github.com/storagebench/benchtab/benchagg"
)

func TestToText(t *testing.T) {
	var buf bytes.Buffer
	if err := sparseTable(t).ToText(&buf); err != nil {
		t.Fatal(err)
	}
	want := `Average_Time_ms: mean by Metric
Implementation │  X │  Y
A              │ 10 │ 20
B              │ 30
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestToCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sparseTable(t).ToCSV(&buf); err != nil {
		t.Fatal(err)
	}
	// The missing (B, Y) cell must come out as an empty field, not
	// a zero.
	want := `Implementation,X,Y
A,10,20
B,30,
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestToHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := sparseTable(t).ToHTML(&buf); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"<caption>Average_Time_ms: mean</caption>",
		"<tr><th>Implementation</th><th>X</th><th>Y</th></tr>",
		"<tr><td>A</td><td>10</td><td>20</td></tr>",
		"<tr><td>B</td><td>30</td><td></td></tr>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteRanking(t *testing.T) {
	p := benchagg.NewProjection("Implementation", "Metric")
	groups := map[benchagg.Key]*benchagg.Aggregate{
		p.Key("leaky", "SELECT"): benchagg.NewAggregate([]float64{5.0}),
		p.Key("ping", "SELECT"):  benchagg.NewAggregate([]float64{3.0}),
		p.Key("ping", "INSERT"):  benchagg.NewAggregate([]float64{9.0}),
	}
	entries := benchagg.BestBy(groups, "Metric", benchagg.Minimize)

	var buf bytes.Buffer
	if err := WriteRanking(&buf, "Best by Metric", entries); err != nil {
		t.Fatal(err)
	}
	want := `Best by Metric
--------------
INSERT         : ping INSERT (9)
SELECT         : ping SELECT (3)
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
