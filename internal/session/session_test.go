package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/kv"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

var rina = user.User{ID: "abc123xyz", Email: "rina@example.com", Name: "rina", Role: user.RoleUser}

func addPods(t *testing.T, s *Session) {
	t.Helper()
	err := s.WithCart(func(c *cart.Cart) error {
		return c.AddToCart(product.Product{ID: "1", Price: decimal.RequireFromString("249.99")})
	})
	require.NoError(t, err)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(kv.NewMemory())

	s := m.Create()
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Authenticated())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_LoginPersistsAndResumes(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	m := NewManager(store)
	s := m.Create()

	require.NoError(t, m.Login(ctx, s, rina))
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, rina, u)

	var persisted user.User
	found, err := kv.GetJSON(ctx, store, "session/"+s.ID+"/"+UserKey, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rina, persisted)

	// A fresh process sharing the mirror rebuilds the identity.
	other := NewManager(store)
	resumed, err := other.Resume(ctx, s.ID)
	require.NoError(t, err)
	u, ok = resumed.User()
	require.True(t, ok)
	assert.Equal(t, rina, u)

	again, err := other.Resume(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, resumed, again)
}

func TestManager_ResumeEmptyIDCreates(t *testing.T) {
	m := NewManager(kv.NewMemory())
	s, err := m.Resume(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
}

func TestManager_LoginErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user id", func(t *testing.T) {
		m := NewManager(kv.NewMemory())
		assert.ErrorIs(t, m.Login(ctx, m.Create(), user.User{}), ErrInvalidUser)
	})

	t.Run("store failure leaves session anonymous", func(t *testing.T) {
		boom := errors.New("mirror down")
		m := NewManager(failingStore{err: boom})
		s := m.Create()
		err := m.Login(ctx, s, rina)
		assert.ErrorIs(t, err, boom)
		assert.False(t, s.Authenticated())
	})

	t.Run("restore failure surfaces", func(t *testing.T) {
		boom := errors.New("mirror down")
		m := NewManager(failingStore{err: boom})
		_, err := m.Resume(ctx, "abc")
		assert.ErrorIs(t, err, boom)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	m := NewManager(store)
	s := m.Create()
	require.NoError(t, m.Login(ctx, s, rina))
	addPods(t, s)

	require.NoError(t, m.Logout(ctx, s))

	assert.False(t, s.Authenticated())
	assert.Equal(t, 0, s.CartSummary().Count)
	_, err := store.Get(ctx, "session/"+s.ID+"/"+UserKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// Logging out twice is harmless.
	require.NoError(t, m.Logout(ctx, s))
}

func TestSession_CheckoutGuard(t *testing.T) {
	s := newSession("s1")

	_, err := s.BeginCheckout()
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.False(t, s.CheckoutInFlight())

	addPods(t, s)
	items, err := s.BeginCheckout()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, s.CheckoutInFlight())

	_, err = s.BeginCheckout()
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	s.EndCheckout(false)
	assert.False(t, s.CheckoutInFlight())
	assert.Equal(t, 1, s.CartSummary().Count)

	_, err = s.BeginCheckout()
	require.NoError(t, err)
	s.EndCheckout(true)
	assert.False(t, s.CheckoutInFlight())
	assert.Equal(t, 0, s.CartSummary().Count)
}

func TestSession_CartFrozenDuringCheckout(t *testing.T) {
	s := newSession("s1")
	addPods(t, s)

	_, err := s.BeginCheckout()
	require.NoError(t, err)

	called := false
	err = s.WithCart(func(c *cart.Cart) error {
		called = true
		c.Clear()
		return nil
	})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	assert.False(t, called)
	assert.Equal(t, 1, s.CartSummary().Count)

	s.EndCheckout(false)
	addPods(t, s)
	assert.Equal(t, 2, s.CartSummary().Count)
}

func TestSession_GuardIsExclusiveUnderContention(t *testing.T) {
	s := newSession("s1")
	addPods(t, s)
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.BeginCheckout(); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestSession_ConcurrentCartWrites(t *testing.T) {
	s := newSession("s1")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addPods(t, s)
		}()
	}
	wg.Wait()

	summary := s.CartSummary()
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 50, summary.Count)
}
