// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"bytes"
	"testing"
)

func TestTable(t *testing.T) {
	var o Table
	o.Row().Cell("name").Cell("val", Right)
	o.Row().Cell("short").Cell("1", Right)
	o.Row().Cell("x").Cell("100", Right)

	var buf bytes.Buffer
	if err := o.Format(&buf); err != nil {
		t.Fatal(err)
	}
	want := `name   val
short    1
x      100
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestTableColSkip(t *testing.T) {
	var o Table
	o.Row().Cell("a").Cell("b").Cell("c")
	o.Row().Cell("1").Col(2).Cell("3")

	var buf bytes.Buffer
	if err := o.Format(&buf); err != nil {
		t.Fatal(err)
	}
	want := `a  b  c
1     3
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestTableLeftMargin(t *testing.T) {
	var o Table
	o.Row().Cell("a").Cell("b", LeftMargin(" | "))
	o.Row().Cell("long").Cell("c", LeftMargin(" | "))

	var buf bytes.Buffer
	if err := o.Format(&buf); err != nil {
		t.Fatal(err)
	}
	want := `a    | b
long | c
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestColBackwardsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Col moving backwards should panic")
		}
	}()
	var o Table
	o.Row().Cell("a").Cell("b")
	o.Col(0)
}
