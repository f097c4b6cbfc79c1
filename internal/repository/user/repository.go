package user

import (
	"context"

	"merchstore/internal/domain"
)

// Repository persists and fetches storefront accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
