package address

import (
	"context"
	"sync"

	"storefront-be/internal/kv"
)

const keyPrefix = "addresses/"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) ([]Address, error)
	Replace(ctx context.Context, userID string, addresses []Address) error
}

type repository struct {
	mu    sync.Mutex
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func (r *repository) GetByUserID(ctx context.Context, userID string) ([]Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var addresses []Address
	if _, err := kv.GetJSON(ctx, r.store, keyPrefix+userID, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repository) Replace(ctx context.Context, userID string, addresses []Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return kv.SetJSON(ctx, r.store, keyPrefix+userID, addresses)
}
