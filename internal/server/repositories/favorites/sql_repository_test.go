package favorites

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/users"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+favorites\s*\(user_id,\s*product_id,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`

func TestAdd_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		want    error
		wrapped bool
	}{
		{name: "duplicate", dbErr: &pgconn.PgError{Code: "23505"}, want: common.ErrorAlreadyExists},
		{name: "missing product", dbErr: &pgconn.PgError{Code: "23503"}, want: common.ErrorNotFound},
		{name: "other", dbErr: errors.New("db down"), wrapped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectQuery(insertQuery).
				WithArgs(int64(1), int64(2), sqlmock.AnyArg()).
				WillReturnError(tt.dbErr)

			_, err := repo.Add(context.Background(), &models.Favorite{UserID: 1, ProductID: 2, CreatedAt: time.Now()})
			if tt.wrapped {
				if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
					t.Fatalf("expected wrapped db error, got %v", err)
				}
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdd_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(insertQuery).
		WithArgs(int64(1), int64(2), now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	fav, err := repo.Add(context.Background(), &models.Favorite{UserID: 1, ProductID: 2, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(5), fav.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^DELETE FROM favorites WHERE user_id = \$1 AND product_id = \$2$`
	mock.ExpectExec(q).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(1), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Remove(context.Background(), 1, 2))
	assert.ErrorIs(t, repo.Remove(context.Background(), 1, 3), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsForUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+favorites\s+f\s+JOIN\s+products\s+p`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db err"))

	_, err := repo.ListProductsForUser(context.Background(), 1)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

type fixture struct {
	favs     *SQLRepository
	products *products.SQLRepository
	userID   int64
	otherID  int64
	items    []*models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := repotest.OpenSQLite(t)
	bound := dbx.Bind(dbx.DialectSQLite, db)
	ctx := context.Background()

	userRepo := users.NewSQLRepository(bound)
	u1, err := userRepo.Create(ctx, &models.User{Email: "alice@example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	u2, err := userRepo.Create(ctx, &models.User{Email: "bob@example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	f := &fixture{
		favs:     NewSQLRepository(bound),
		products: products.NewSQLRepository(bound),
		userID:   u1.ID,
		otherID:  u2.ID,
	}
	for _, title := range []string{"First", "Second", "Third"} {
		p, err := f.products.Create(ctx, &models.Product{
			Title: title, Price: 100, Description: "d", Image: "https://img/" + title, CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		f.items = append(f.items, p)
	}
	return f
}

func (f *fixture) add(t *testing.T, userID, productID int64, at time.Time) (*models.Favorite, error) {
	t.Helper()
	return f.favs.Add(context.Background(), &models.Favorite{UserID: userID, ProductID: productID, CreatedAt: at})
}

func TestSQLite_AddTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	fav, err := f.add(t, f.userID, f.items[0].ID, now)
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	_, err = f.add(t, f.userID, f.items[0].ID, now)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = f.add(t, f.otherID, f.items[0].ID, now)
	assert.NoError(t, err, "uniqueness is per user")
}

func TestSQLite_AddMissingProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.add(t, f.userID, 999, time.Now().UTC())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_AddRemoveAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.items[1].ID

	_, err := f.add(t, f.userID, pid, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, f.favs.Remove(ctx, f.userID, pid))
	assert.ErrorIs(t, f.favs.Remove(ctx, f.userID, pid), common.ErrorNotFound)

	_, err = f.add(t, f.userID, pid, time.Now().UTC())
	require.NoError(t, err)

	list, err := f.favs.ListProductsForUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pid, list[0].ID)
}

func TestSQLite_ListOrderedByFavoriteTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.add(t, f.userID, f.items[2].ID, base)
	require.NoError(t, err)
	_, err = f.add(t, f.userID, f.items[0].ID, base.Add(time.Second))
	require.NoError(t, err)
	_, err = f.add(t, f.otherID, f.items[1].ID, base)
	require.NoError(t, err)

	list, err := f.favs.ListProductsForUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Third", list[0].Title)
	assert.Equal(t, "First", list[1].Title)

	empty, err := f.favs.ListProductsForUser(ctx, 12345)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLite_ProductDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.items[0].ID

	_, err := f.add(t, f.userID, pid, time.Now().UTC())
	require.NoError(t, err)
	_, err = f.add(t, f.otherID, pid, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, f.favs.DeleteByProduct(ctx, pid))
	require.NoError(t, f.products.Delete(ctx, pid))

	list, err := f.favs.ListProductsForUser(ctx, f.otherID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
