package repository

import (
	"context"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// UserRepository é a interface de persistência de contas de autor.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
