package cart

import "errors"

var (
	ErrInvalidProduct = errors.New("cart: product id is required")
	ErrEmptyCart      = errors.New("cart is empty")
)
