package repository

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// UserRepository is the store-of-record access for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	Update(ctx context.Context, user *model.User) error

	FindByID(ctx context.Context, id string) (*model.User, error)

	FindByUsername(ctx context.Context, username string) (*model.User, error)

	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
