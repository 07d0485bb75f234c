package users

import (
	"context"

	"github.com/dmitrijs2005/gophmarket/internal/server/models"
)

// Repository is the credential store. Emails are unique: Create reports a
// taken email as common.ErrorAlreadyExists, and GetByEmail returns
// common.ErrorNotFound for unknown users.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
