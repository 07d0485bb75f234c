package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const sqlitePrefix = "sqlite:"

// ParseDSN maps a store URL to a database/sql driver name, its data source
// and the SQL dialect. Accepted forms are postgres://..., postgresql://...
// and sqlite:<path>.
func ParseDSN(dsn string) (driver, source string, dialect dbx.Dialect, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, dbx.DialectPostgres, nil

	case strings.HasPrefix(dsn, sqlitePrefix):
		path := strings.TrimPrefix(dsn, sqlitePrefix)
		if path == "" {
			return "", "", "", fmt.Errorf("empty sqlite path in %q", dsn)
		}
		if !strings.HasPrefix(path, "file:") {
			path = "file:" + path
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return "sqlite", path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbx.DialectSQLite, nil
	}

	return "", "", "", fmt.Errorf("unsupported database dsn scheme: %q", RedactDSN(dsn))
}

// Open connects to the store named by dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, dbx.Dialect, error) {
	driver, source, dialect, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("db open: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping: %w", err)
	}

	return db, dialect, nil
}

// RedactDSN hides credentials in a store URL so it can be logged.
func RedactDSN(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		if j := strings.Index(dsn, "://"); j >= 0 && j < i {
			return dsn[:j+3] + "***" + dsn[i:]
		}
	}
	return dsn
}
