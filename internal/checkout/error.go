package checkout

import (
	"errors"

	"storefront-be/internal/cart"
	"storefront-be/internal/session"
)

var (
	ErrEmptyCart          = cart.ErrEmptyCart
	ErrInvalidForm        = errors.New("invalid checkout form")
	ErrCheckoutInProgress = session.ErrCheckoutInProgress
	ErrPhaseFailed        = errors.New("checkout phase failed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderIDExhausted   = errors.New("could not allocate a unique order id")
)
