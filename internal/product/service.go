package product

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultStock  = 10
	defaultRating = 5.0
)

// Describer writes marketing copy when an admin leaves the description blank.
// Implementations return a fallback string instead of failing.
type Describer interface {
	Generate(ctx context.Context, name, category string) string
}

type Service interface {
	List(ctx context.Context, sortBy SortOption) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, input Input) (Product, error)
	Update(ctx context.Context, id string, input Input) (Product, error)
	Delete(ctx context.Context, id string) error
	CatalogContext(ctx context.Context, focusID string) (string, error)
}

type service struct {
	repo      Repository
	describer Describer
	newID     func() string
}

func NewService(repo Repository, describer Describer) Service {
	return &service{
		repo:      repo,
		describer: describer,
		newID:     uuid.NewString,
	}
}

func (s *service) List(ctx context.Context, sortBy SortOption) ([]Product, error) {
	if !sortBy.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sortBy)
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Product, len(products))
	copy(items, products)

	switch sortBy {
	case SortPriceLowHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case SortPriceHighLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.GreaterThan(items[j].Price) })
	case SortRatingHighLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	case SortAlphabetical:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}

	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input Input) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", input.Name),
	)
	start := time.Now()

	if err := s.validate(input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return Product{}, err
	}

	p := Product{
		ID:          s.newID(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Description: s.describe(ctx, input),
		Rating:      defaultRating,
		Stock:       stockOrDefault(input.Stock),
		Image:       "https://picsum.photos/seed/" + strings.Join(strings.Fields(input.Name), "") + "/800/1000",
		Gallery:     []string{},
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created",
		zap.String("product_id", created.ID),
		zap.Duration("duration", time.Since(start)),
	)
	return created, nil
}

// Update replaces the editable fields; image, gallery and rating are kept.
func (s *service) Update(ctx context.Context, id string, input Input) (Product, error) {
	if err := s.validate(input); err != nil {
		return Product{}, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Category = strings.TrimSpace(input.Category)
	existing.Price = input.Price
	existing.Description = s.describe(ctx, input)
	existing.Stock = stockOrDefault(input.Stock)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return Product{}, err
	}

	logger.FromCtx(ctx).Info("product updated",
		zap.String("layer", "service"),
		zap.String("product_id", id),
	)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("product purged", zap.String("product_id", id))
	return nil
}

// CatalogContext is the text handed to the shopping assistant: the focused product's
// name and description, or every product name when nothing is focused.
func (s *service) CatalogContext(ctx context.Context, focusID string) (string, error) {
	if focusID != "" {
		p, err := s.repo.Get(ctx, focusID)
		if err != nil {
			return "", err
		}
		return p.Name + " - " + p.Description, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", "), nil
}

func (s *service) validate(input Input) error {
	if err := validation.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return fmt.Errorf("%w: name and category cannot be blank", ErrInvalidProduct)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if input.Stock != nil && *input.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	return nil
}

func (s *service) describe(ctx context.Context, input Input) string {
	if d := strings.TrimSpace(input.Description); d != "" {
		return d
	}
	if s.describer == nil {
		return ""
	}
	return s.describer.Generate(ctx, input.Name, input.Category)
}

func stockOrDefault(stock *int) int {
	if stock == nil {
		return defaultStock
	}
	return *stock
}
