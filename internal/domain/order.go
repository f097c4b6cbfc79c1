package domain

import "time"

// Order is the record written at checkout. TotalCents mirrors the cart
// subtotal at submission time.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Address       string    `json:"address"`
	TotalCents    int64     `json:"totalCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderItem is one cart line frozen into a persisted order.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}
