// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"io"
	"strings"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("table").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<table class='benchtab'>
<caption>{{.Field}}: {{.Reducer}}</caption>
<thead>
<tr><th>{{.RowLabel}}</th>{{range .Cols}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows -}}
<tr><td>{{.Label}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end -}}
</tbody>
</table>
`)))

type htmlTable struct {
	Field    string
	Reducer  string
	RowLabel string
	Cols     []string
	Rows     []htmlRow
}

type htmlRow struct {
	Label string
	Cells []string
}

// ToHTML renders t as an HTML table. Missing cells become empty
// <td> elements.
func (t *Table) ToHTML(w io.Writer) error {
	data := htmlTable{
		Field:    t.Field,
		Reducer:  t.Reducer,
		RowLabel: strings.Join(t.RowDims, ","),
	}
	for _, col := range t.Cols {
		data.Cols = append(data.Cols, col.StringValues())
	}
	for _, rowKey := range t.Rows {
		row := htmlRow{Label: rowKey.StringValues()}
		for _, colKey := range t.Cols {
			cell, ok := t.Cells[TableKey{rowKey, colKey}]
			if !ok {
				row.Cells = append(row.Cells, "")
				continue
			}
			row.Cells = append(row.Cells, formatValue(cell.Value))
		}
		data.Rows = append(data.Rows, row)
	}
	return htmlTemplate.Execute(w, data)
}
