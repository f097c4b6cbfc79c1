package domain

import "time"

type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	PriceCents       int64     `json:"priceCents"`
	Category         string    `json:"category,omitempty"`
	Image            string    `json:"image,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}
