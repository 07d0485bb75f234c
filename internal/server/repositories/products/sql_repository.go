// Package products is the catalog store. Searches match title or description
// case-insensitively and list newest first.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
)

const productColumns = `id, title, price_cents, description, image, created_at`

const searchCondition = `(LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(description) LIKE $1 ESCAPE '\')`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a user query into a lower-cased substring pattern with
// LIKE wildcards escaped.
func LikePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

func (r *SQLRepository) List(ctx context.Context, f Filter) ([]*models.Product, error) {
	var (
		query string
		args  []any
	)

	if f.Query == "" {
		query = `SELECT ` + productColumns + ` FROM products
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`
		args = []any{f.Limit, f.Offset}
	} else {
		query = `SELECT ` + productColumns + ` FROM products
		 WHERE ` + searchCondition + `
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`
		args = []any{LikePattern(f.Query), f.Limit, f.Offset}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return ScanProducts(rows)
}

func (r *SQLRepository) Count(ctx context.Context, q string) (int64, error) {
	var (
		total int64
		err   error
	)

	if q == "" {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE `+searchCondition, LikePattern(q)).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return total, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (title, price_cents, description, image, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.Title, int64(p.Price), p.Description, p.Image, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *SQLRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET title = $1, price_cents = $2, description = $3, image = $4
		 WHERE id = $5
		 RETURNING ` + productColumns

	return scanOne(r.db.QueryRowContext(ctx, query,
		p.Title, int64(p.Price), p.Description, p.Image, p.ID))
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var cents int64
	if err := s.Scan(&p.ID, &p.Title, &cents, &p.Description, &p.Image, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Price = models.Price(cents)
	return p, nil
}

func scanOne(row *sql.Row) (*models.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// ScanProducts reads rows selected with the product column list, in order.
// The result is never nil.
func ScanProducts(rows *sql.Rows) ([]*models.Product, error) {
	items := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}
