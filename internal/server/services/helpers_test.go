package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/config"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repotest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		PasswordHashCost:            bcrypt.MinCost,
	}
}

func newSQLite(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db := repotest.OpenSQLite(t)
	rm, err := repomanager.NewRepositoryManager(dbx.DialectSQLite)
	require.NoError(t, err)
	return db, rm
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
