// Package cart holds the shopper's intended purchases for one session.
package cart

import (
	"github.com/shopspring/decimal"

	"storefront-be/internal/product"
)

// Cart keeps one line per product id in insertion order. It is not safe for concurrent
// use; the owning session serialises access.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ID == productID {
			return i
		}
	}
	return -1
}

// AddToCart increments the line for p or appends a new line with quantity 1.
func (c *Cart) AddToCart(p product.Product) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
		return nil
	}
	c.items = append(c.items, Item{Product: p.Clone(), Quantity: 1})
	return nil
}

// UpdateQuantity shifts a line by delta, never letting it drop below 1.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.items[i].Quantity = max(1, c.items[i].Quantity+delta)
}

func (c *Cart) RemoveFromCart(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// BuyNow replaces the whole cart with a single unit of p and reports where the
// shopper goes next.
func (c *Cart) BuyNow(p product.Product, authenticated bool) (NextStep, error) {
	if p.ID == "" {
		return "", ErrInvalidProduct
	}
	c.items = []Item{{Product: p.Clone(), Quantity: 1}}
	if authenticated {
		return NextStepCheckout, nil
	}
	return NextStepLogin, nil
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns deep copies of every line.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

// Snapshot freezes the current lines for checkout. It fails on an empty cart.
func (c *Cart) Snapshot() ([]Item, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return c.Items(), nil
}

func (c *Cart) Quantity(productID string) (int, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return 0, false
	}
	return c.items[i].Quantity, true
}

// Subtotal is recomputed on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.items)
}

// Count is the total number of units, recomputed on every call.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Summary() Summary {
	return Summary{Items: c.Items(), Count: c.Count(), Subtotal: c.Subtotal()}
}

func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
