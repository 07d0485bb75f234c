package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repomanager"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// ListQuery selects one page of the catalog. Zero values are replaced by
// defaults.
type ListQuery struct {
	Query string
	Page  int
	Limit int
}

// ProductInput is the body of a create request.
type ProductInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=1000000000"`
	Description string   `json:"description" validate:"required,max=5000"`
	Image       string   `json:"image" validate:"required,url,max=2048"`
}

// ProductPatchInput is the body of an update request. Absent fields keep
// their current value.
type ProductPatchInput struct {
	Title       *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0,lte=1000000000"`
	Description *string  `json:"description" validate:"omitnil,min=1,max=5000"`
	Image       *string  `json:"image" validate:"omitnil,url,max=2048"`
}

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m, now: time.Now}
}

// NormalizePage applies the paging defaults: page starts at 1, a missing
// limit becomes DefaultPageLimit and any limit is clamped to [1, MaxPageLimit].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// List returns one page of products, optionally filtered by a search query
// matched against title and description.
func (s *ProductService) List(ctx context.Context, q ListQuery) (*models.ProductPage, error) {
	page, limit := NormalizePage(q.Page, q.Limit)
	query := strings.TrimSpace(q.Query)

	repo := s.repomanager.Products(s.db)

	total, err := repo.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counting products: %w", err)
	}

	items, err := repo.List(ctx, products.Filter{Query: query, Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return &models.ProductPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	price, err := models.PriceFromFloat(*in.Price)
	if err != nil {
		return nil, priceError()
	}

	p := &models.Product{
		Title:       in.Title,
		Price:       price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.repomanager.Products(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return created, nil
}

// Update applies the provided fields in a single read-modify-write
// transaction.
func (s *ProductService) Update(ctx context.Context, id int64, in ProductPatchInput) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	patch := models.ProductPatch{Title: in.Title, Description: in.Description, Image: in.Image}
	if in.Price != nil {
		price, err := models.PriceFromFloat(*in.Price)
		if err != nil {
			return nil, priceError()
		}
		patch.Price = &price
	}

	var updated *models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(current)

		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating product: %w", err)
	}

	return updated, nil
}

// Delete removes the product together with every favorite pointing at it.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Favorites(tx).DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Products(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}
	return nil
}

func priceError() error {
	return common.NewValidationError("price", "price")
}
