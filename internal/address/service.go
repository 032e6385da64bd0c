// Package address keeps the shipping details a signed-in shopper has checked out
// with, so the next checkout can be prefilled.
package address

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxSaved bounds how many addresses are kept per user; the least recently used go first.
const MaxSaved = 5

type Service interface {
	List(ctx context.Context, userID string) ([]Address, error)
	Remember(ctx context.Context, userID string, input RememberInput) (Address, error)
	Delete(ctx context.Context, userID string, addressID uuid.UUID) error
	SetDefault(ctx context.Context, userID string, addressID uuid.UUID) error
}

type service struct {
	mu    sync.Mutex
	repo  Repository
	now   func() time.Time
	newID func() uuid.UUID
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now, newID: uuid.New}
}

// List returns the default address first, then the rest by most recent use.
func (s *service) List(ctx context.Context, userID string) ([]Address, error) {
	addresses, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		return []Address{}, nil
	}
	return addresses, nil
}

// Remember records a checkout destination. A destination already on file (same
// phone and address, ignoring case and spacing) is refreshed instead of duplicated.
// The remembered address becomes the default.
func (s *service) Remember(ctx context.Context, userID string, input RememberInput) (Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RememberAddress"),
		zap.String("user_id", userID),
	)

	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	if userID == "" || input.Phone == "" || input.Address == "" {
		return Address{}, fmt.Errorf("%w: user, phone and address are required", ErrInvalidAddress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	addresses, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to load addresses", zap.Error(err))
		return Address{}, err
	}

	remembered := Address{
		ID:      s.newID(),
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	rest := make([]Address, 0, len(addresses))
	for _, a := range addresses {
		if sameDestination(a, remembered) {
			remembered.ID = a.ID
			continue
		}
		a.IsDefault = false
		rest = append(rest, a)
	}
	remembered.IsDefault = true
	remembered.LastUsedAt = s.now().UTC()

	updated := append([]Address{remembered}, rest...)
	if len(updated) > MaxSaved {
		updated = updated[:MaxSaved]
	}
	if err := s.repo.Replace(ctx, userID, updated); err != nil {
		log.Error("failed to save addresses", zap.Error(err))
		return Address{}, err
	}

	log.Info("address remembered", zap.String("address_id", remembered.ID.String()))
	return remembered, nil
}

func (s *service) Delete(ctx context.Context, userID string, addressID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]Address, 0, len(addresses))
	var removed *Address
	for i, a := range addresses {
		if a.ID == addressID {
			removed = &addresses[i]
			continue
		}
		kept = append(kept, a)
	}
	if removed == nil {
		return ErrAddressNotFound
	}
	if removed.IsDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}
	return s.repo.Replace(ctx, userID, kept)
}

// SetDefault moves addressID to the front and marks it default.
func (s *service) SetDefault(ctx context.Context, userID string, addressID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID
		if addresses[i].IsDefault {
			idx = i
		}
	}
	if idx < 0 {
		return ErrAddressNotFound
	}

	chosen := addresses[idx]
	reordered := append([]Address{chosen}, addresses[:idx]...)
	reordered = append(reordered, addresses[idx+1:]...)
	return s.repo.Replace(ctx, userID, reordered)
}

func sameDestination(a, b Address) bool {
	return normalize(a.Phone) == normalize(b.Phone) && normalize(a.Address) == normalize(b.Address)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
