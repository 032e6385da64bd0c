package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", value))

	// stored bytes must not alias the caller's slice
	value[0] = 'x'
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var out doc
	found, err := GetJSON(ctx, s, "doc", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, s, "doc", doc{Name: "cart", Count: 2}))

	found, err = GetJSON(ctx, s, "doc", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "cart", Count: 2}, out)

	t.Run("CorruptValue", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "bad", []byte("{not json")))
		_, err := GetJSON(ctx, s, "bad", &out)
		assert.Error(t, err)
	})

	t.Run("StoreError", func(t *testing.T) {
		_, err := GetJSON(ctx, failingStore{}, "doc", &out)
		assert.EqualError(t, err, "boom")
	})
}

func TestPrefixed(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	scoped := Prefixed(base, "session/abc/")

	require.NoError(t, scoped.Set(ctx, "fd_user", []byte(`"u"`)))

	raw, err := base.Get(ctx, "session/abc/fd_user")
	require.NoError(t, err)
	assert.Equal(t, `"u"`, string(raw))

	raw, err = scoped.Get(ctx, "fd_user")
	require.NoError(t, err)
	assert.Equal(t, `"u"`, string(raw))

	require.NoError(t, scoped.Delete(ctx, "fd_user"))
	_, err = base.Get(ctx, "session/abc/fd_user")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("boom") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("boom") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("boom") }
