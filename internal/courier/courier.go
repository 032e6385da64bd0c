// Package courier simulates the Bangladeshi courier integrations that hand out
// tracking ids once an order is booked.
package courier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

var ErrUnsupportedCourier = errors.New("unsupported courier service")

type ID string

const (
	Pathao    ID = "pathao"
	Steadfast ID = "steadfast"
	Sundarban ID = "sundarban"
)

// Service describes a courier. APISupported is listing metadata for the checkout
// page; booking works for every registered courier.
type Service struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	APISupported bool   `json:"apiSupported"`
	prefix       string
}

var registry = []Service{
	{ID: Pathao, Name: "Pathao Courier", Icon: "🛵", APISupported: true, prefix: "PTH-"},
	{ID: Steadfast, Name: "Steadfast Courier", Icon: "⚡", APISupported: true, prefix: "STF-"},
	{ID: Sundarban, Name: "Sundarban Service", Icon: "📦", APISupported: false, prefix: "SUN-"},
}

// Services lists every courier shown at checkout, in display order.
func Services() []Service {
	return append([]Service(nil), registry...)
}

func Lookup(id ID) (Service, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Valid reports whether id names a registered courier, API-backed or not.
func (id ID) Valid() bool {
	_, ok := Lookup(id)
	return ok
}

type Result struct {
	TrackingID string `json:"trackingId"`
}

type Syncer interface {
	Sync(ctx context.Context, orderID string, id ID) (Result, error)
}

// MockSyncer books orders after a fixed delay and fabricates tracking ids.
type MockSyncer struct {
	Delay time.Duration
	after func(time.Duration) <-chan time.Time
}

func NewMockSyncer(delay time.Duration) *MockSyncer {
	return &MockSyncer{Delay: delay, after: time.After}
}

func (m *MockSyncer) Sync(ctx context.Context, orderID string, id ID) (Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "courier"),
		zap.String("order_id", orderID),
		zap.String("courier", string(id)),
	)
	log.Info("syncing order with courier api")

	if m.Delay > 0 {
		after := m.after
		if after == nil {
			after = time.After
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-after(m.Delay):
		}
	}

	svc, ok := Lookup(id)
	if !ok {
		log.Warn("unknown courier")
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedCourier, id)
	}

	tracking, err := utils.RandomCode(svc.prefix, 8)
	if err != nil {
		return Result{}, err
	}
	return Result{TrackingID: tracking}, nil
}
