// Package events fans order changes out to Kafka and the live admin feed.
package events

import (
	"context"
	"time"

	"storefront-be/internal/order"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"
	TopicCourierSynced      = "order.courier_synced"
)

type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Courier        string    `json:"courier,omitempty"`
	TrackingID     string    `json:"tracking_id,omitempty"`
	Total          string    `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	EventTime      time.Time `json:"event_time"`
}

func newOrderEvent(topic string, o order.Order, previous order.Status, now time.Time) OrderEvent {
	return OrderEvent{
		Type:           topic,
		OrderID:        o.ID,
		UserID:         o.UserID,
		Status:         string(o.Status),
		PreviousStatus: string(previous),
		Courier:        string(o.Courier),
		TrackingID:     o.CourierTrackingID,
		Total:          o.Total.StringFixed(2),
		CreatedAt:      o.CreatedAt,
		EventTime:      now.UTC(),
	}
}

// Fanout forwards every event to each publisher in turn.
type Fanout []order.Publisher

func (f Fanout) OrderCreated(ctx context.Context, o order.Order) {
	for _, p := range f {
		p.OrderCreated(ctx, o)
	}
}

func (f Fanout) OrderStatusChanged(ctx context.Context, o order.Order, previous order.Status) {
	for _, p := range f {
		p.OrderStatusChanged(ctx, o, previous)
	}
}

func (f Fanout) CourierSynced(ctx context.Context, o order.Order) {
	for _, p := range f {
		p.CourierSynced(ctx, o)
	}
}

// Broadcaster is the live feed side, satisfied by the websocket hub.
type Broadcaster interface {
	Broadcast(messageType string, data any, source string)
}

type broadcastPublisher struct {
	b   Broadcaster
	now func() time.Time
}

func NewBroadcastPublisher(b Broadcaster) order.Publisher {
	return &broadcastPublisher{b: b, now: time.Now}
}

func (p *broadcastPublisher) OrderCreated(_ context.Context, o order.Order) {
	p.b.Broadcast(TopicOrderCreated, newOrderEvent(TopicOrderCreated, o, "", p.now()), "order")
}

func (p *broadcastPublisher) OrderStatusChanged(_ context.Context, o order.Order, previous order.Status) {
	p.b.Broadcast(TopicOrderStatusChanged, newOrderEvent(TopicOrderStatusChanged, o, previous, p.now()), "order")
}

func (p *broadcastPublisher) CourierSynced(_ context.Context, o order.Order) {
	p.b.Broadcast(TopicCourierSynced, newOrderEvent(TopicCourierSynced, o, "", p.now()), "courier")
}
