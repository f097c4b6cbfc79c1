// Package cart implements the in-memory shopping cart held by one storefront
// session. A Cart is constructed explicitly and handed to its owner; nothing
// in this package keeps global state.
package cart

import (
	"fmt"
	"strings"
	"sync"
)

// LineItem is one product entry in the cart with an associated quantity.
// At most one line exists per product id.
type LineItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Image          string `json:"image,omitempty"`
	Quantity       int    `json:"quantity"`
}

// TotalCents is the line total (unit price times quantity).
func (l LineItem) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// ItemInput describes a product being added to the cart.
type ItemInput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Image          string `json:"image,omitempty"`
}

// ValidationError reports a rejected cart mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cart input: %s %s", e.Field, e.Reason)
}

// Cart holds line items in insertion order, keyed by product id. All
// operations are synchronous and touch memory only. The internal mutex
// serializes access from concurrent request handlers of the same session.
type Cart struct {
	mu    sync.Mutex
	lines []*LineItem
	index map[string]*LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]*LineItem)}
}

// AddItem adds quantity units of the given product. Adding a product already
// in the cart increments the existing line instead of appending a second one.
func (c *Cart) AddItem(in ItemInput, quantity int) error {
	if strings.TrimSpace(in.ID) == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.UnitPriceCents < 0 {
		return &ValidationError{Field: "unitPriceCents", Reason: "must not be negative"}
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.index[in.ID]; ok {
		line.Quantity += quantity
		return nil
	}
	line := &LineItem{
		ProductID:      in.ID,
		Name:           in.Name,
		UnitPriceCents: in.UnitPriceCents,
		Image:          in.Image,
		Quantity:       quantity,
	}
	c.lines = append(c.lines, line)
	c.index[in.ID] = line
	return nil
}

// RemoveItem drops the line with the given product id. Removing an absent id
// is a no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or less
// removes the line.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(id)
		return
	}
	if line, ok := c.index[id]; ok {
		line.Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[string]*LineItem)
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// TotalItems recomputes the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// SubtotalCents recomputes the sum of unit price times quantity across all
// lines.
func (c *Cart) SubtotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal int64
	for _, line := range c.lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

func (c *Cart) removeLocked(id string) {
	if _, ok := c.index[id]; !ok {
		return
	}
	delete(c.index, id)
	for i, line := range c.lines {
		if line.ProductID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}
