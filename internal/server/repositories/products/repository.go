package products

import (
	"context"

	"github.com/dmitrijs2005/gophmarket/internal/server/models"
)

// Filter narrows a catalog listing. An empty Query matches everything.
type Filter struct {
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]*models.Product, error)
	Count(ctx context.Context, query string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}
