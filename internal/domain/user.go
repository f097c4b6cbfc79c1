package domain

import "time"

// User represents a registered storefront account. A non-nil *User held by a
// session is the sole authorization signal for checkout.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
