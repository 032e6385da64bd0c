package category

import "github.com/shopspring/decimal"

// Category is a catalog section derived from the products that carry its name.
type Category struct {
	Name         string          `json:"name"`
	ProductCount int             `json:"productCount"`
	InStock      int             `json:"inStock"`
	FromPrice    decimal.Decimal `json:"fromPrice"`
}
