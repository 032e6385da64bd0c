package order

import (
	"context"
	"sync"

	"storefront-be/internal/kv"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// StorageKey is where orders live in the key-value mirror, newest first.
const StorageKey = "fd_orders"

type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	// Mutate applies fn to the stored order under the repository lock and saves the result.
	Mutate(ctx context.Context, id string, fn func(o *Order) error) (Order, error)
}

type repository struct {
	mu    sync.Mutex
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func (r *repository) load(ctx context.Context) ([]Order, error) {
	var orders []Order
	if _, err := kv.GetJSON(ctx, r.store, StorageKey, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) save(ctx context.Context, orders []Order) error {
	return kv.SetJSON(ctx, r.store, StorageKey, orders)
}

func (r *repository) Create(ctx context.Context, o Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		log.Error("failed to load orders", zap.Error(err))
		return err
	}
	for _, existing := range orders {
		if existing.ID == o.ID {
			return ErrOrderExists
		}
	}

	orders = append([]Order{o.Clone()}, orders...)
	if err := r.save(ctx, orders); err != nil {
		log.Error("failed to save orders", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *repository) Mutate(ctx context.Context, id string, fn func(o *Order) error) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return Order{}, err
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Order{}, ErrOrderNotFound
	}

	updated := orders[idx].Clone()
	if err := fn(&updated); err != nil {
		return Order{}, err
	}
	orders[idx] = updated

	if err := r.save(ctx, orders); err != nil {
		logger.FromCtx(ctx).Error("failed to save orders",
			zap.String("layer", "repository"),
			zap.String("method", "MutateOrder"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return Order{}, err
	}
	return updated.Clone(), nil
}
