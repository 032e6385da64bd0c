// Package category groups the catalog into the sections shown in the storefront nav.
package category

import (
	"context"
	"sort"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

// Catalog is the product source categories are derived from.
type Catalog interface {
	List(ctx context.Context, sortBy product.SortOption) ([]product.Product, error)
}

type Service interface {
	List(ctx context.Context, filter string) ([]Category, error)
}

type service struct {
	catalog Catalog
}

func NewService(catalog Catalog) Service {
	return &service{catalog: catalog}
}

// List returns categories sorted by name. A non-empty filter keeps names containing it,
// case-insensitively. Category names are matched ignoring case and surrounding space.
func (s *service) List(ctx context.Context, filter string) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListCategories"),
	)

	products, err := s.catalog.List(ctx, product.SortDefault)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	byKey := make(map[string]*Category)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		key := strings.ToLower(name)
		if key == "" || (filter != "" && !strings.Contains(key, filter)) {
			continue
		}

		c, ok := byKey[key]
		if !ok {
			c = &Category{Name: name, FromPrice: p.Price}
			byKey[key] = c
		}
		c.ProductCount++
		if p.Stock > 0 {
			c.InStock++
		}
		if p.Price.LessThan(c.FromPrice) {
			c.FromPrice = p.Price
		}
	}

	categories := make([]Category, 0, len(byKey))
	for _, c := range byKey {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})

	log.Debug("categories listed", zap.Int("count", len(categories)))
	return categories, nil
}
