// Package checkout orchestrates order submission for one storefront session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"merchstore/internal/cart"
	"merchstore/internal/domain"
)

// State describes where a checkout attempt stands. Failed transitions back to
// Idle on resubmission; Succeeded is terminal for the attempt.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var (
	// ErrAuthRequired signals the caller to redirect to sign-in. No backend
	// write happens when it is returned.
	ErrAuthRequired = errors.New("sign in required to place an order")
	// ErrEmptyCart rejects submission of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// SubmissionError wraps a failed backend write with the step that broke.
type SubmissionError struct {
	Step string
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("checkout %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// OrderWriter is the backend boundary for the two checkout writes.
type OrderWriter interface {
	CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
}

type userSource interface {
	CurrentUser() *domain.User
}

// FormFields are the checkout form inputs.
type FormFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Flow runs one checkout attempt at a time over a session's cart. The two
// backend writes are sequential and not transactional: if the order-items
// insert fails, the order record from the first write stays persisted with no
// compensating deletion, and a retry creates a new order. No idempotency key
// is used.
type Flow struct {
	cart   *cart.Cart
	users  userSource
	orders OrderWriter

	mu      sync.Mutex
	state   State
	lastErr error
}

// New returns a Flow in the Idle state.
func New(c *cart.Cart, users userSource, orders OrderWriter) *Flow {
	return &Flow{cart: c, users: users, orders: orders, state: StateIdle}
}

// State returns the current submission state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed attempt, nil otherwise.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit places the order. The guards run before any state transition: an
// empty cart or a signed-out user never reaches Submitting and issues zero
// backend writes. On full success the cart is cleared and the created order
// returned.
func (f *Flow) Submit(ctx context.Context, form FormFields) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	user := f.users.CurrentUser()
	if user == nil {
		return nil, ErrAuthRequired
	}

	f.state = StateSubmitting
	f.lastErr = nil

	var subtotal int64
	for _, line := range items {
		subtotal += line.TotalCents()
	}
	order := domain.Order{
		UserID:        user.ID,
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
		Address:       form.Address,
		TotalCents:    subtotal,
	}
	created, err := f.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, f.fail("create order", err)
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, line := range items {
		orderItems = append(orderItems, domain.OrderItem{
			OrderID:    created.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.UnitPriceCents,
		})
	}
	if err := f.orders.CreateOrderItems(ctx, orderItems); err != nil {
		// The order row from the first write remains persisted.
		return nil, f.fail("create order items", err)
	}

	f.cart.Clear()
	f.state = StateSucceeded
	return created, nil
}

func (f *Flow) fail(step string, err error) error {
	f.state = StateFailed
	f.lastErr = &SubmissionError{Step: step, Err: err}
	return f.lastErr
}
