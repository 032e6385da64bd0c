package address

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/kv"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *service {
	svc := NewService(NewRepository(kv.NewMemory())).(*service)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return svc
}

func TestService_Remember(t *testing.T) {
	ctx := context.Background()

	t.Run("First address becomes default", func(t *testing.T) {
		svc := newTestService()
		a, err := svc.Remember(ctx, "u1", RememberInput{Name: " Rahim ", Phone: "017", Address: "Dhaka"})
		require.NoError(t, err)
		assert.True(t, a.IsDefault)
		assert.Equal(t, "Rahim", a.Name)

		list, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, a.ID, list[0].ID)
		assert.True(t, a.LastUsedAt.Equal(list[0].LastUsedAt))
	})

	t.Run("Same destination is refreshed not duplicated", func(t *testing.T) {
		svc := newTestService()
		first, err := svc.Remember(ctx, "u1", RememberInput{Name: "Rahim", Phone: "017", Address: "House 1,  Dhaka"})
		require.NoError(t, err)
		_, err = svc.Remember(ctx, "u1", RememberInput{Name: "Karim", Phone: "018", Address: "Chittagong"})
		require.NoError(t, err)
		again, err := svc.Remember(ctx, "u1", RememberInput{Name: "Rahim U", Phone: "017", Address: "house 1, dhaka"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, again.ID)
		list, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, again.ID, list[0].ID)
		assert.True(t, list[0].IsDefault)
		assert.False(t, list[1].IsDefault)
		assert.True(t, list[0].LastUsedAt.After(first.LastUsedAt))
	})

	t.Run("Keeps at most MaxSaved", func(t *testing.T) {
		svc := newTestService()
		for i := 0; i < MaxSaved+2; i++ {
			_, err := svc.Remember(ctx, "u1", RememberInput{Phone: "017", Address: string(rune('A' + i))})
			require.NoError(t, err)
		}
		list, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, list, MaxSaved)
		assert.Equal(t, string(rune('A'+MaxSaved+1)), list[0].Address)
	})

	t.Run("Rejects incomplete input", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Remember(ctx, "u1", RememberInput{Phone: "  "})
		assert.ErrorIs(t, err, ErrInvalidAddress)
		_, err = svc.Remember(ctx, "", RememberInput{Phone: "017", Address: "Dhaka"})
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("Users are isolated", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Remember(ctx, "u1", RememberInput{Phone: "017", Address: "Dhaka"})
		require.NoError(t, err)
		list, err := svc.List(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NotNil(t, list)
	})
}

func TestService_SetDefaultAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a, err := svc.Remember(ctx, "u1", RememberInput{Phone: "017", Address: "Dhaka"})
	require.NoError(t, err)
	b, err := svc.Remember(ctx, "u1", RememberInput{Phone: "018", Address: "Sylhet"})
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(ctx, "u1", a.ID))
	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	assert.ErrorIs(t, svc.SetDefault(ctx, "u1", uuid.New()), ErrAddressNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", a.ID))
	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)

	assert.ErrorIs(t, svc.Delete(ctx, "u1", a.ID), ErrAddressNotFound)
}

type failingRepo struct{}

func (failingRepo) GetByUserID(context.Context, string) ([]Address, error) {
	return nil, errors.New("mirror down")
}

func (failingRepo) Replace(context.Context, string, []Address) error {
	return errors.New("mirror down")
}

func TestService_RepositoryFailure(t *testing.T) {
	svc := NewService(failingRepo{})
	_, err := svc.Remember(context.Background(), "u1", RememberInput{Phone: "017", Address: "Dhaka"})
	assert.EqualError(t, err, "mirror down")
	_, err = svc.List(context.Background(), "u1")
	assert.Error(t, err)
}
