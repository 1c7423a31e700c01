// Copyright 2024 The Benchtab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb persists benchmark summary artifacts in a SQL
// database.
//
// It stores finished aggregates and comparison-table cells, never
// raw records. The missing-vs-zero distinction survives storage: a
// missing table cell produces no row at all, and an undefined
// standard deviation is stored as NULL, not 0.
package benchdb

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/storagebench/benchtab/benchagg"
	"github.com/storagebench/benchtab/benchtab"
)

// DB is a high-level interface to a summary database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertAggregate *sql.Stmt
	insertCell      *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only sqlite3 is
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Aggregates (
	Field VARCHAR(255) NOT NULL,
	GroupKey VARCHAR(1024) NOT NULL,
	Mean DOUBLE NOT NULL,
	Min DOUBLE NOT NULL,
	Max DOUBLE NOT NULL,
	Std DOUBLE,
	N INTEGER NOT NULL,
	PRIMARY KEY (Field, GroupKey)
);
CREATE TABLE IF NOT EXISTS TableCells (
	Field VARCHAR(255) NOT NULL,
	Reducer VARCHAR(32) NOT NULL,
	RowKey VARCHAR(1024) NOT NULL,
	ColKey VARCHAR(1024) NOT NULL,
	Value DOUBLE NOT NULL,
	N INTEGER NOT NULL,
	PRIMARY KEY (Field, Reducer, RowKey, ColKey)
);
`))

// createTables creates the database tables if they don't already
// exist.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// tmpl executes a one-line template t on a map with driverName set,
// returning the result.
func (db *DB) tmpl(driverName, t string) string {
	var buf bytes.Buffer
	err := template.Must(template.New("tmpl").Parse(t)).Execute(&buf, map[string]bool{driverName: true})
	if err != nil {
		panic(err)
	}
	return buf.String()
}

// prepareStatements prepares the statements used by the write paths.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertAggregate, err = db.sql.Prepare(db.tmpl(driverName,
		"{{if .sqlite3}}INSERT OR REPLACE{{else}}REPLACE{{end}} INTO Aggregates (Field, GroupKey, Mean, Min, Max, Std, N) VALUES (?, ?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return err
	}
	db.insertCell, err = db.sql.Prepare(db.tmpl(driverName,
		"{{if .sqlite3}}INSERT OR REPLACE{{else}}REPLACE{{end}} INTO TableCells (Field, Reducer, RowKey, ColKey, Value, N) VALUES (?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return err
	}
	return nil
}

// WriteAggregates stores one row per group. Groups are written in
// sorted key order so repeated runs produce identical databases.
func (db *DB) WriteAggregates(field string, groups map[benchagg.Key]*benchagg.Aggregate) error {
	keys := make([]benchagg.Key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	benchagg.SortKeys(keys)
	for _, k := range keys {
		a := groups[k]
		std := sql.NullFloat64{Float64: a.Std, Valid: a.HasStd}
		if _, err := db.insertAggregate.Exec(field, k.String(), a.Mean, a.Min, a.Max, std, a.Count); err != nil {
			return fmt.Errorf("writing aggregate for %s: %w", k, err)
		}
	}
	return nil
}

// WriteTable stores one row per present cell of t. Missing cells
// produce no rows.
func (db *DB) WriteTable(t *benchtab.Table) error {
	for _, row := range t.Rows {
		for _, col := range t.Cols {
			cell, ok := t.Cells[benchtab.TableKey{Row: row, Col: col}]
			if !ok {
				continue
			}
			if _, err := db.insertCell.Exec(t.Field, t.Reducer, row.String(), col.String(), cell.Value, cell.Agg.Count); err != nil {
				return fmt.Errorf("writing cell (%s, %s): %w", row, col, err)
			}
		}
	}
	return nil
}

// An AggregateRow is one stored aggregate as read back from the
// database.
type AggregateRow struct {
	GroupKey string
	Mean     float64
	Min      float64
	Max      float64
	Std      sql.NullFloat64
	N        int
}

// Aggregates reads back the stored aggregates for field, ordered by
// group key.
func (db *DB) Aggregates(field string) ([]AggregateRow, error) {
	rows, err := db.sql.Query("SELECT GroupKey, Mean, Min, Max, Std, N FROM Aggregates WHERE Field = ? ORDER BY GroupKey", field)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AggregateRow
	for rows.Next() {
		var r AggregateRow
		if err := rows.Scan(&r.GroupKey, &r.Mean, &r.Min, &r.Max, &r.Std, &r.N); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// A CellRow is one stored table cell as read back from the database.
type CellRow struct {
	RowKey string
	ColKey string
	Value  float64
	N      int
}

// TableCells reads back the stored cells for (field, reducer),
// ordered by row then column key.
func (db *DB) TableCells(field, reducer string) ([]CellRow, error) {
	rows, err := db.sql.Query("SELECT RowKey, ColKey, Value, N FROM TableCells WHERE Field = ? AND Reducer = ? ORDER BY RowKey, ColKey", field, reducer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CellRow
	for rows.Next() {
		var r CellRow
		if err := rows.Scan(&r.RowKey, &r.ColKey, &r.Value, &r.N); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.sql.Close()
}
