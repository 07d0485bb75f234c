// Package seed resets the store to a small demo catalog with two test users.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/logging"
	"github.com/dmitrijs2005/gophmarket/internal/server/config"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

const productCount = 10

type account struct {
	email, password, name string
}

var accounts = []account{
	{"alice@example.com", "password123", "Alice"},
	{"bob@example.com", "password456", "Bob"},
}

// favorites maps an account index to the (0-based) products it favorites.
var favorites = map[int][]int{
	0: {0, 1},
	1: {2},
}

// Wipe deletes every favorite, product and user.
func Wipe(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range []string{"favorites", "products", "users"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}

func productInput(n int) services.ProductInput {
	price := math.Round(float64(n)*10.99*100) / 100
	return services.ProductInput{
		Title:       fmt.Sprintf("Product %d", n),
		Price:       &price,
		Description: fmt.Sprintf("This is the description for Product %d. It is a great item you will love!", n),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%d/400/300", n),
	}
}

// Run wipes the store and inserts the demo data through the regular
// services, so passwords are hashed and inputs validated as in production.
func Run(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) error {
	if err := Wipe(ctx, db); err != nil {
		return fmt.Errorf("error wiping store: %w", err)
	}

	us := services.NewUserService(db, rm, nil, cfg)
	ps := services.NewProductService(db, rm)
	fs := services.NewFavoriteService(db, rm)

	userIDs := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		name := a.name
		res, err := us.Register(ctx, services.RegisterInput{Email: a.email, Password: a.password, Name: &name})
		if err != nil {
			return fmt.Errorf("error creating user %s: %w", a.email, err)
		}
		userIDs = append(userIDs, res.User.ID)
	}

	products := make([]*models.Product, 0, productCount)
	for n := 1; n <= productCount; n++ {
		p, err := ps.Create(ctx, productInput(n))
		if err != nil {
			return fmt.Errorf("error creating product %d: %w", n, err)
		}
		products = append(products, p)
	}

	for ui, pis := range favorites {
		for _, pi := range pis {
			if _, err := fs.Add(ctx, userIDs[ui], products[pi].ID); err != nil {
				return fmt.Errorf("error adding favorite: %w", err)
			}
		}
	}

	l.Info(ctx, "Seed completed", "users", len(userIDs), "products", len(products))
	for _, a := range accounts {
		l.Info(ctx, "Test user", "email", a.email, "password", a.password)
	}

	return nil
}
