// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders finished comparison tables as charts.
//
// It consumes benchtab.Table values only; it never re-derives
// statistics from raw records. Missing cells draw nothing: bars are
// simply absent and lines break at the gap, so a hole in the data is
// never presented as a zero measurement.
package benchchart

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchtab"
)

// Options is the rendering configuration for one chart. Style lives
// here, passed in per call; this package keeps no process-wide
// state.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// Width and Height are the canvas dimensions. Zero means
	// 24cm x 12cm.
	Width, Height vg.Length

	// DPI is the raster resolution for SavePNG. Zero means 100.
	DPI int

	// LogY draws the value axis in log scale.
	LogY bool
}

func (o Options) withDefaults(t *benchtab.Table) Options {
	if o.Title == "" {
		o.Title = fmt.Sprintf("%s (%s)", t.Field, t.Reducer)
	}
	if o.XLabel == "" {
		o.XLabel = strings.Join(t.RowDims, ",")
	}
	if o.YLabel == "" {
		o.YLabel = t.Field
	}
	if o.Width == 0 {
		o.Width = 24 * vg.Centimeter
	}
	if o.Height == 0 {
		o.Height = 12 * vg.Centimeter
	}
	if o.DPI == 0 {
		o.DPI = 100
	}
	return o
}

// palette returns the color for series i.
func palette(i int) color.Color {
	colors := []color.RGBA{
		{R: 0x3b, G: 0x6d, B: 0xb3, A: 0xff},
		{R: 0xd0, G: 0x60, B: 0x3c, A: 0xff},
		{R: 0x4c, G: 0x9f, B: 0x70, A: 0xff},
		{R: 0x8e, G: 0x63, B: 0xb0, A: 0xff},
		{R: 0xc8, G: 0xa2, B: 0x3c, A: 0xff},
		{R: 0x5b, G: 0xb4, B: 0xc4, A: 0xff},
	}
	return colors[i%len(colors)]
}

func newPlot(t *benchtab.Table, o Options) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = o.Title
	pl.X.Label.Text = o.XLabel
	pl.Y.Label.Text = o.YLabel
	if o.LogY {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)
	return pl
}

// A barRun is a consecutive stretch of present cells within one
// column, anchored at its first row position.
type barRun struct {
	start int
	vals  plotter.Values
}

// barRuns splits one column of t into runs of present cells. Rows
// whose cell is absent fall between runs, so no value is ever
// fabricated for them.
func barRuns(t *benchtab.Table, col benchagg.Key) []barRun {
	var runs []barRun
	var run barRun
	for i, row := range t.Rows {
		cell, ok := t.Cells[benchtab.TableKey{Row: row, Col: col}]
		if !ok {
			if len(run.vals) > 0 {
				runs = append(runs, run)
			}
			run = barRun{}
			continue
		}
		if len(run.vals) == 0 {
			run.start = i
		}
		run.vals = append(run.vals, cell.Value)
	}
	if len(run.vals) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// Bar renders t as a grouped bar chart: one group per row key, one
// bar per column key. Cells absent from the table draw no bar at all,
// which also keeps log-scale value axes (Options.LogY) free of
// fabricated zeros.
func Bar(t *benchtab.Table, o Options) (*plot.Plot, error) {
	o = o.withDefaults(t)
	pl := newPlot(t, o)

	n := len(t.Cols)
	if n == 0 || len(t.Rows) == 0 {
		return nil, fmt.Errorf("table for %q has no cells to chart", t.Field)
	}
	w := vg.Points(36) / vg.Length(n)

	for j, col := range t.Cols {
		var first *plotter.BarChart
		for _, run := range barRuns(t, col) {
			bar, err := plotter.NewBarChart(run.vals, w)
			if err != nil {
				return nil, err
			}
			bar.LineStyle.Width = 0
			bar.Color = palette(j)
			bar.Offset = w * vg.Length(float64(j)-float64(n-1)/2)
			bar.XMin = float64(run.start)
			pl.Add(bar)
			if first == nil {
				first = bar
			}
		}
		if first != nil {
			pl.Legend.Add(col.StringValues(), first)
		}
	}

	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = row.StringValues()
	}
	pl.NominalX(names...)
	pl.Legend.Top = true
	return pl, nil
}

// Line renders t as a line chart: one line per column key over the
// numerically ordered row keys. Row keys that parse as numbers (SI
// suffixes included) place points at their numeric value; otherwise
// rows fall back to their table position. A line breaks at any row
// whose cell is missing rather than dipping to zero.
func Line(t *benchtab.Table, o Options) (*plot.Plot, error) {
	o = o.withDefaults(t)
	pl := newPlot(t, o)

	if len(t.Cols) == 0 || len(t.Rows) == 0 {
		return nil, fmt.Errorf("table for %q has no cells to chart", t.Field)
	}

	xs := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		x, err := parseNum(row.StringValues())
		if err != nil {
			x = float64(i)
		}
		xs[i] = x
	}

	for j, col := range t.Cols {
		var run plotter.XYs
		var lines []*plotter.Line
		flush := func() error {
			if len(run) == 0 {
				return nil
			}
			line, err := plotter.NewLine(run)
			if err != nil {
				return err
			}
			line.Color = palette(j)
			line.Width = vg.Points(1.5)
			pl.Add(line)
			lines = append(lines, line)
			run = nil
			return nil
		}
		for i, row := range t.Rows {
			cell, ok := t.Cells[benchtab.TableKey{Row: row, Col: col}]
			if !ok {
				if err := flush(); err != nil {
					return nil, err
				}
				continue
			}
			run = append(run, plotter.XY{X: xs[i], Y: cell.Value})
		}
		if err := flush(); err != nil {
			return nil, err
		}
		if len(lines) > 0 {
			pl.Legend.Add(col.StringValues(), lines[0])
		}
	}

	pl.Legend.Top = true
	return pl, nil
}

// SavePNG rasterizes pl to a PNG file at path using the dimensions
// and DPI in o.
func SavePNG(pl *plot.Plot, o Options, path string) error {
	if o.Width == 0 {
		o.Width = 24 * vg.Centimeter
	}
	if o.Height == 0 {
		o.Height = 12 * vg.Centimeter
	}
	if o.DPI == 0 {
		o.DPI = 100
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(o.Width, o.Height),
		vgimg.UseDPI(o.DPI),
		vgimg.UseBackgroundColor(color.White),
	)}
	pl.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
