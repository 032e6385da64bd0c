package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrInvalidProduct  = errors.New("invalid product input")
	ErrInvalidSort     = errors.New("invalid sort option")
)
