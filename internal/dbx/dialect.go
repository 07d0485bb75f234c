package dbx

import (
	"context"
	"database/sql"
	"regexp"
)

// Dialect names the SQL flavour behind a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Repositories write PostgreSQL-style $N placeholders. SQLite reads $N as a
// named parameter, so those are rewritten to the numbered ?N form.
var dollarPlaceholder = regexp.MustCompile(`\$(\d+)`)

// Rebind converts query placeholders for the given dialect.
func Rebind(d Dialect, query string) string {
	if d != DialectSQLite {
		return query
	}
	return dollarPlaceholder.ReplaceAllString(query, "?$1")
}

// Bind returns a DBTX that rebinds every query for d before running it.
// PostgreSQL handles are returned unchanged.
func Bind(d Dialect, db DBTX) DBTX {
	if d != DialectSQLite {
		return db
	}
	return rebinder{db: db, dialect: d}
}

type rebinder struct {
	db      DBTX
	dialect Dialect
}

func (r rebinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, Rebind(r.dialect, query), args...)
}

func (r rebinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, Rebind(r.dialect, query), args...)
}

func (r rebinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, Rebind(r.dialect, query), args...)
}
