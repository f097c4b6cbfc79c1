package order

import (
	"context"
	"io"
	"log"

	"merchstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (user_id, customer_name, customer_email, address, total_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	res := o
	err := r.pool.QueryRow(ctx, q, o.UserID, o.CustomerName, o.CustomerEmail, o.Address, o.TotalCents).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s total_cents=%d", res.ID, res.TotalCents)
	return &res, nil
}

func (r *postgresRepo) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO order_items (order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)
`
	for _, item := range items {
		if _, err := tx.Exec(ctx, q, item.OrderID, item.ProductID, item.Quantity, item.PriceCents); err != nil {
			r.logger.Printf("order repo: insert item order_id=%s product_id=%s error=%v", item.OrderID, item.ProductID, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, customer_name, customer_email, address, total_cents, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.Address, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
