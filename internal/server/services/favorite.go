package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repomanager"
)

type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewFavoriteService(db *sql.DB, m repomanager.RepositoryManager) *FavoriteService {
	return &FavoriteService{db: db, repomanager: m, now: time.Now}
}

// Add marks productID as a favorite of userID. A repeated pair yields
// common.ErrorAlreadyExists, a missing product common.ErrorNotFound.
func (s *FavoriteService) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	fav := &models.Favorite{UserID: userID, ProductID: productID, CreatedAt: s.now().UTC()}

	created, err := s.repomanager.Favorites(s.db).Add(ctx, fav)
	if err != nil {
		return nil, fmt.Errorf("error adding favorite: %w", err)
	}
	return created, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.repomanager.Favorites(s.db).Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}

// ListForUser returns the user's favorite products, oldest favorite first.
func (s *FavoriteService) ListForUser(ctx context.Context, userID int64) ([]*models.Product, error) {
	items, err := s.repomanager.Favorites(s.db).ListProductsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return items, nil
}
