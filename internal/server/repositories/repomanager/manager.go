package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle, which may be the
// pool or a transaction, and owns the schema for its dialect.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
