// Package repomanager provides a concrete RepositoryManager for the supported
// SQL stores, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/migrations"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repositories bound to a DBTX of one dialect and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewRepositoryManager constructs a RepositoryManager for dialect.
func NewRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if _, err := gooseDialect(dialect); err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(dbx.Bind(m.dialect, db))
}

// Products returns a products.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Products(db dbx.DBTX) products.Repository {
	return products.NewSQLRepository(dbx.Bind(m.dialect, db))
}

// Favorites returns a favorites.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Favorites(db dbx.DBTX) favorites.Repository {
	return favorites.NewSQLRepository(dbx.Bind(m.dialect, db))
}

// gooseUp is a seam for testing provider.Up.
var gooseUp = func(ctx context.Context, p *goose.Provider) error {
	_, err := p.Up(ctx)
	return err
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	dialect, err := gooseDialect(m.dialect)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.Migrations, string(m.dialect))
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	return gooseUp(ctx, provider)
}

func gooseDialect(d dbx.Dialect) (goose.Dialect, error) {
	switch d {
	case dbx.DialectPostgres:
		return goose.DialectPostgres, nil
	case dbx.DialectSQLite:
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("unsupported dialect %q", d)
}
