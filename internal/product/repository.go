package product

import (
	"context"
	"sync"

	"storefront-be/internal/kv"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// StorageKey is where the catalog lives in the key-value mirror.
const StorageKey = "fd_products"

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	mu    sync.Mutex
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

// load returns the mirrored catalog, or the seed catalog when nothing has been saved yet.
func (r *repository) load(ctx context.Context) ([]Product, error) {
	var products []Product
	found, err := kv.GetJSON(ctx, r.store, StorageKey, &products)
	if err != nil {
		return nil, err
	}
	if !found {
		return SeedProducts(), nil
	}
	return products, nil
}

func (r *repository) save(ctx context.Context, products []Product) error {
	return kv.SetJSON(ctx, r.store, StorageKey, products)
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *repository) Get(ctx context.Context, id string) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("product_id", p.ID),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return Product{}, err
	}
	for _, existing := range products {
		if existing.ID == p.ID {
			return Product{}, ErrProductExists
		}
	}

	// newest first, like the storefront grid
	products = append([]Product{p}, products...)
	if err := r.save(ctx, products); err != nil {
		log.Error("failed to save catalog", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created")
	return p, nil
}

func (r *repository) Update(ctx context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return Product{}, err
	}

	idx := -1
	for i := range products {
		if products[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Product{}, ErrProductNotFound
	}

	products[idx] = p
	if err := r.save(ctx, products); err != nil {
		logger.FromCtx(ctx).Error("failed to save catalog",
			zap.String("layer", "repository"),
			zap.String("method", "UpdateProduct"),
			zap.Error(err),
		)
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return ErrProductNotFound
	}

	return r.save(ctx, kept)
}
