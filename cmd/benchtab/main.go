// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchtab summarizes tabular benchmark results.
//
// Usage:
//
//	benchtab -dims dims -fields fields [options] results.csv [more.csv ...]
//
// Each input file is a CSV file with a header row. The -dims and
// -fields options declare which columns are categorical dimensions
// and which are numeric measurements; a column that encodes two
// dimensions joined by "__" (for example "leaky__small" in an
// Implementation_DataType column) is declared with -split.
//
// Benchtab pivots the measurements into a row × column comparison
// table, prints per-group summary statistics, and reports the best
// group per outer key (for example, the fastest implementation per
// operation). Rows that cannot be used are dropped and counted, and
// combinations never observed in the input stay visibly empty in
// every output format.
//
// For example, to find the fastest implementation per operation over
// a summary file with Implementation, Metric and Average_Time_ms
// columns:
//
//	benchtab -dims Implementation,Metric -fields Average_Time_ms \
//		-row Implementation -col Metric -best Metric \
//		summary_statistics.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchchart"
	"github.com/storagebench/benchtab/benchcsv"
	"github.com/storagebench/benchtab/benchdb"
	"github.com/storagebench/benchtab/benchtab"

	_ "github.com/mattn/go-sqlite3"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchtab -dims dims -fields fields [options] results.csv [more.csv ...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var (
	flagDims      = flag.String("dims", "", "comma-separated categorical `columns`")
	flagFields    = flag.String("fields", "", "comma-separated numeric `columns`")
	flagSep       = flag.String("sep", benchcsv.DefaultSep, "`separator` for composite columns")
	flagRow       = flag.String("row", "", "comma-separated `dims` for table rows (default first dim)")
	flagCol       = flag.String("col", "", "comma-separated `dims` for table columns (default second dim)")
	flagField     = flag.String("field", "", "numeric `field` to tabulate (default first of -fields)")
	flagReducer   = flag.String("reducer", "mean", "cell `reducer`: mean, min, or max")
	flagBest      = flag.String("best", "", "report the best group per value of `dim`")
	flagDirection = flag.String("direction", "min", "ranking direction: min or max")
	flagFormat    = flag.String("format", "text", "output `format`: text, csv, or html")
	flagChart     = flag.String("chart", "", "write a PNG chart to `file`")
	flagChartType = flag.String("chart-type", "bar", "chart `type`: bar or line")
	flagSQLite    = flag.String("sqlite", "", "persist summaries to the SQLite database at `path`")
)

var splits splitFlags

// splitFlags collects repeated -split options of the form
// "Column=dimA,dimB".
type splitFlags []benchcsv.Split

func (s *splitFlags) String() string {
	var parts []string
	for _, sp := range *s {
		parts = append(parts, sp.Column+"="+strings.Join(sp.Into, ","))
	}
	return strings.Join(parts, ";")
}

func (s *splitFlags) Set(v string) error {
	col, into, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected Column=dimA,dimB, got %q", v)
	}
	*s = append(*s, benchcsv.Split{Column: col, Into: splitList(into)})
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var directions = map[string]benchagg.Direction{
	"min":      benchagg.Minimize,
	"minimize": benchagg.Minimize,
	"max":      benchagg.Maximize,
	"maximize": benchagg.Maximize,
}

func main() {
	log.SetPrefix("benchtab: ")
	log.SetFlags(0)
	flag.Var(&splits, "split", "composite `column`, as Column=dimA,dimB (repeatable)")
	flag.Usage = usage
	flag.Parse()

	schema := &benchcsv.Schema{
		Dims:   splitList(*flagDims),
		Fields: splitList(*flagFields),
		Splits: splits,
	}
	for i := range schema.Splits {
		schema.Splits[i].Sep = *flagSep
	}
	dir, dirOK := directions[*flagDirection]
	reducer, redOK := benchtab.ReducerByName(*flagReducer)
	if flag.NArg() < 1 || len(schema.Fields) == 0 || !dirOK || !redOK {
		flag.Usage()
	}

	dims := schema.DimNames()
	rowDims := splitList(*flagRow)
	colDims := splitList(*flagCol)
	if len(rowDims) == 0 && len(dims) > 0 {
		rowDims = dims[:1]
	}
	if len(colDims) == 0 && len(dims) > 1 {
		colDims = dims[1:2]
	}
	field := *flagField
	if field == "" {
		field = schema.Fields[0]
	}

	rs, err := benchcsv.ReadFiles(schema, flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}
	if rs.Dropped > 0 || rs.Invalid > 0 {
		log.Printf("dropped %d malformed rows, %d invalid numeric cells", rs.Dropped, rs.Invalid)
	}
	if rs.Len() == 0 {
		log.Print("no records in input")
		return
	}

	builder := benchtab.NewBuilder(
		benchagg.NewProjection(rowDims...),
		benchagg.NewProjection(colDims...),
		field, reducer)
	if err := builder.Add(rs); err != nil {
		log.Fatal(err)
	}
	t := builder.ToTable()

	switch *flagFormat {
	case "text":
		err = t.ToText(os.Stdout)
	case "csv":
		err = t.ToCSV(os.Stdout)
	case "html":
		os.Stdout.WriteString(htmlHeader)
		err = t.ToHTML(os.Stdout)
		os.Stdout.WriteString(htmlFooter)
	default:
		flag.Usage()
	}
	if err != nil {
		log.Fatal(err)
	}

	groupBy := benchagg.NewProjection(dims...)
	groups, err := benchagg.Group(rs, groupBy, field)
	if err != nil {
		log.Fatal(err)
	}

	if *flagBest != "" {
		entries := benchagg.BestBy(groups, *flagBest, dir)
		title := fmt.Sprintf("Best by %s (%s %s)", *flagBest, dir, field)
		fmt.Println()
		if err := benchtab.WriteRanking(os.Stdout, title, entries); err != nil {
			log.Fatal(err)
		}
	}

	if *flagSQLite != "" {
		db, err := benchdb.OpenSQL("sqlite3", *flagSQLite)
		if err != nil {
			log.Fatal(err)
		}
		if err := db.WriteAggregates(field, groups); err != nil {
			log.Fatal(err)
		}
		if err := db.WriteTable(t); err != nil {
			log.Fatal(err)
		}
		if err := db.Close(); err != nil {
			log.Fatal(err)
		}
	}

	if *flagChart != "" {
		opts := benchchart.Options{}
		var pl, chartErr = benchchart.Bar(t, opts)
		if *flagChartType == "line" {
			pl, chartErr = benchchart.Line(t, opts)
		}
		if chartErr != nil {
			log.Fatal(chartErr)
		}
		if err := benchchart.SavePNG(pl, opts, *flagChart); err != nil {
			log.Fatal(err)
		}
	}
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Benchmark Comparison</title>
<style>
.benchtab { border-collapse: collapse; }
.benchtab th:nth-child(1) { text-align: left; }
.benchtab td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.benchtab thead th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
</style>
</head>
<body>
`

var htmlFooter = `</body>
</html>
`
