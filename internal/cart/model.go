package cart

import (
	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus the quantity the shopper wants. Quantity is never below 1.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone deep-copies the item so later cart edits cannot leak into holders of the copy.
func (i Item) Clone() Item {
	i.Product = i.Product.Clone()
	return i
}

// NextStep tells the caller where to route after BuyNow.
type NextStep string

const (
	NextStepCheckout NextStep = "checkout"
	NextStepLogin    NextStep = "login"
)

// Summary is the read-side view rendered by the cart page.
type Summary struct {
	Items    []Item          `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
