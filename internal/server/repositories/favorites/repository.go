package favorites

import (
	"context"

	"github.com/dmitrijs2005/gophmarket/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, fav *models.Favorite) (*models.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
	ListProductsForUser(ctx context.Context, userID int64) ([]*models.Product, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}
