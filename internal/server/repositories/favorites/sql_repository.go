// Package favorites is the per-user favorite index. A (user, product) pair is
// stored at most once.
package favorites

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/products"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Add stores fav. An existing pair yields common.ErrorAlreadyExists; a
// missing user or product yields common.ErrorNotFound.
func (r *SQLRepository) Add(ctx context.Context, fav *models.Favorite) (*models.Favorite, error) {
	query :=
		`INSERT INTO favorites (user_id, product_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, fav.UserID, fav.ProductID, fav.CreatedAt).Scan(&fav.ID)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fav, nil
}

func (r *SQLRepository) Remove(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// ListProductsForUser returns the user's favorite products in the order they
// were favorited.
func (r *SQLRepository) ListProductsForUser(ctx context.Context, userID int64) ([]*models.Product, error) {
	query :=
		`SELECT p.id, p.title, p.price_cents, p.description, p.image, p.created_at
		 FROM favorites f
		 JOIN products p ON p.id = f.product_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at ASC, f.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return products.ScanProducts(rows)
}

func (r *SQLRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
