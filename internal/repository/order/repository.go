package order

import (
	"context"

	"merchstore/internal/domain"
)

// Repository writes checkout records. CreateOrder and CreateOrderItems are
// deliberately separate calls: the checkout flow issues them in sequence and
// owns the partial-failure semantics between them.
type Repository interface {
	CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
