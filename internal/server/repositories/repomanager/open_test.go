package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		driver  string
		source  string
		dialect dbx.Dialect
		wantErr bool
	}{
		{
			name:    "postgres",
			dsn:     "postgres://u:p@localhost:5432/marketplace?sslmode=disable",
			driver:  "pgx",
			source:  "postgres://u:p@localhost:5432/marketplace?sslmode=disable",
			dialect: dbx.DialectPostgres,
		},
		{
			name:    "postgresql scheme",
			dsn:     "postgresql://localhost/m",
			driver:  "pgx",
			source:  "postgresql://localhost/m",
			dialect: dbx.DialectPostgres,
		},
		{
			name:    "sqlite path",
			dsn:     "sqlite:market.db",
			driver:  "sqlite",
			source:  "file:market.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			dialect: dbx.DialectSQLite,
		},
		{
			name:    "sqlite uri with params",
			dsn:     "sqlite:file:m?mode=memory",
			driver:  "sqlite",
			source:  "file:m?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			dialect: dbx.DialectSQLite,
		},
		{name: "empty sqlite", dsn: "sqlite:", wantErr: true},
		{name: "mysql", dsn: "mysql://root@localhost/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, source, dialect, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.source, source)
			assert.Equal(t, tt.dialect, dialect)
		})
	}
}

func TestParseDSN_ErrorHidesCredentials(t *testing.T) {
	_, _, _, err := ParseDSN("mysql://root:hunter2@db/x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, _, err := Open(context.Background(), "redis://localhost")
	assert.Error(t, err)
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@localhost:5432/db", RedactDSN("postgres://u:p@localhost:5432/db"))
	assert.Equal(t, "sqlite:market.db", RedactDSN("sqlite:market.db"))
}

func TestOpen_SQLiteFile(t *testing.T) {
	db, dialect, err := Open(context.Background(), "sqlite:"+t.TempDir()+"/market.db")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, dbx.DialectSQLite, dialect)
}
