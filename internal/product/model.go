package product

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Gallery     []string        `json:"gallery,omitempty"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	if p.Gallery != nil {
		p.Gallery = append([]string(nil), p.Gallery...)
	}
	return p
}

// Input is what the admin console submits when creating or editing a product.
type Input struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       *int            `json:"stock,omitempty"`
}

type SortOption string

const (
	SortDefault       SortOption = "default"
	SortPriceLowHigh  SortOption = "price-low-high"
	SortPriceHighLow  SortOption = "price-high-low"
	SortRatingHighLow SortOption = "rating-high-low"
	SortAlphabetical  SortOption = "alphabetical"
)

func (s SortOption) IsValid() bool {
	switch s {
	case "", SortDefault, SortPriceLowHigh, SortPriceHighLow, SortRatingHighLow, SortAlphabetical:
		return true
	}
	return false
}
