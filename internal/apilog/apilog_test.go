package apilog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-be/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecordKeepsNewestFifty(t *testing.T) {
	l := New(TechNode, 0, nil)
	for i := 0; i < 60; i++ {
		l.Record(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", i), http.StatusOK, time.Millisecond)
	}

	entries := l.Entries()
	require.Len(t, entries, Capacity)
	assert.Equal(t, "/api/v1/products/59", entries[0].Path)
	assert.Equal(t, "/api/v1/products/10", entries[Capacity-1].Path)
	assert.Equal(t, "1.00ms", entries[0].Runtime)
	assert.Equal(t, TechNode, entries[0].Tech)
}

func TestLog_SetTech(t *testing.T) {
	l := New("", 0, nil)
	assert.Equal(t, TechNode, l.Tech())

	require.NoError(t, l.SetTech(TechLaravel))
	e := l.Record(http.MethodPost, "/api/v1/orders", http.StatusCreated, 0)
	assert.Equal(t, TechLaravel, e.Tech)

	assert.ErrorIs(t, l.SetTech("Rails"), ErrInvalidTech)
	assert.Equal(t, TechLaravel, l.Tech())
}

func TestLog_Simulate(t *testing.T) {
	l := New(TechNode, 10*time.Millisecond, nil)

	start := time.Now()
	e, err := l.Simulate(context.Background(), http.MethodPost, "/api/v1/auth/login", http.StatusOK)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, "/api/v1/auth/login", e.Path)
	assert.Len(t, l.Entries(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Simulate(ctx, http.MethodGet, "/api/v1/orders", http.StatusOK)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, l.Entries(), 1)
}

func TestLog_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefront(reg)
	l := New(TechLaravel, 0, m)

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, http.MethodPost, entries[0].Method)
	assert.Equal(t, http.StatusCreated, entries[0].Status)
	assert.Equal(t, TechLaravel, entries[0].Tech)
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "api_requests_total"))
}
