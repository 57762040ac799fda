// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqltrace wraps a database/sql database and traces every statement
// as a database request.
package sqltrace

import (
	"context"
	"database/sql"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/tracer"
)

// DB is a traced database.
type DB struct {
	db       *sql.DB
	provider tracer.Provider
	info     *info.Database
}

// Open opens a database with the registered driver and describes it with d.
// If d is nil, it is derived from the driver name.
func Open(p tracer.Provider, driverName, dataSourceName string, d *info.Database) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = info.NewDatabase(driverName, Vendor(driverName), info.ChannelTypeOther, "")
	}
	return Wrap(p, db, d), nil
}

// Wrap returns a traced database for db.
func Wrap(p tracer.Provider, db *sql.DB, d *info.Database) *DB {
	return &DB{
		db:       db,
		provider: p,
		info:     d,
	}
}

// Vendor returns the database vendor name for a database/sql driver name.
func Vendor(driverName string) string {
	switch driverName {
	case "sqlite", "sqlite3":
		return info.DatabaseVendorSQLite
	case "postgres", "pgx":
		return info.DatabaseVendorPostgreSQL
	case "mysql":
		return info.DatabaseVendorMySQL
	case "sqlserver", "mssql":
		return info.DatabaseVendorSQLServer
	}
	return driverName
}

// DB returns the underlying database.
func (db *DB) DB() *sql.DB {
	return db.db
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) PingContext(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	t := db.provider.TraceSQLDatabaseRequest(ctx, db.info, query)
	t.Start()
	defer t.End()

	res, err := db.db.ExecContext(ctx, query, args...)
	t.SetRoundTripCount(1)
	if err != nil {
		t.Error(err)
		return nil, err
	}
	return res, nil
}

// QueryContext executes a query. The request ends when the returned rows
// are closed, with the number of rows read.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	t := db.provider.TraceSQLDatabaseRequest(ctx, db.info, query)
	t.Start()

	rows, err := db.db.QueryContext(ctx, query, args...)
	t.SetRoundTripCount(1)
	if err != nil {
		t.Error(err)
		t.End()
		return nil, err
	}
	return &Rows{Rows: rows, t: t}, nil
}

// QueryRowContext executes a query that is expected to return at most one
// row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *Row {
	rows, err := db.QueryContext(ctx, query, args...)
	return &Row{rows: rows, err: err}
}

// Rows are the traced result of a query.
type Rows struct {
	*sql.Rows
	t      tracer.DatabaseRequestTracer
	count  int
	closed bool
}

func (r *Rows) Next() bool {
	if !r.Rows.Next() {
		return false
	}
	r.count++
	return true
}

// Close closes the rows and ends the database request.
func (r *Rows) Close() error {
	err := r.Rows.Close()
	if r.closed {
		return err
	}
	r.closed = true

	r.t.SetReturnedRowCount(r.count)
	if rerr := r.Rows.Err(); rerr != nil {
		r.t.Error(rerr)
	} else if err != nil {
		r.t.Error(err)
	}
	r.t.End()
	return err
}

// Row is the traced result of QueryRowContext.
type Row struct {
	rows *Rows
	err  error
}

// Scan copies the columns of the row into dest. It returns sql.ErrNoRows if
// the query returned no rows.
func (r *Row) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	defer r.rows.Close()

	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := r.rows.Scan(dest...); err != nil {
		return err
	}
	return r.rows.Close()
}

func (r *Row) Err() error {
	return r.err
}
