// Package session replaces the browser's ambient state with an explicit,
// per-shopper context: one cart, an optional signed-in user and a checkout guard.
package session

import (
	"sync"

	"storefront-be/internal/cart"
	"storefront-be/internal/user"
)

type Session struct {
	ID string

	mu          sync.Mutex
	cart        *cart.Cart
	user        *user.User
	checkingOut bool
}

func newSession(id string) *Session {
	return &Session{ID: id, cart: cart.New()}
}

// WithCart runs fn while holding the session lock. Every cart write goes through
// here, so a session has exactly one writer at a time. The cart is frozen while a
// checkout holds the session and WithCart returns ErrCheckoutInProgress.
func (s *Session) WithCart(fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCheckoutInProgress
	}
	return fn(s.cart)
}

func (s *Session) CartSummary() cart.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

func (s *Session) User() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *Session) setUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// BeginCheckout claims the session's single checkout slot and returns the cart
// lines the order will be built from. An empty cart is not claimed.
func (s *Session) BeginCheckout() ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return nil, ErrCheckoutInProgress
	}
	items, err := s.cart.Snapshot()
	if err != nil {
		return nil, err
	}
	s.checkingOut = true
	return items, nil
}

// EndCheckout releases the slot. A placed order empties the cart in the same step,
// so no edit can land between the two.
func (s *Session) EndCheckout(placed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if placed {
		s.cart.Clear()
	}
	s.checkingOut = false
}

func (s *Session) CheckoutInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkingOut
}
