package order

import (
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/courier"

	"github.com/shopspring/decimal"
)

// GuestUserID marks orders placed without signing in.
const GuestUserID = "guest"

type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPending, StatusShipped, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusCompleted:
		return true
	}
	return false
}

type DeliveryZone string

const (
	ZoneInside  DeliveryZone = "inside"
	ZoneOutside DeliveryZone = "outside"
)

var (
	insideCost  = decimal.NewFromInt(80)
	outsideCost = decimal.NewFromInt(150)
)

func (z DeliveryZone) Valid() bool {
	return z == ZoneInside || z == ZoneOutside
}

// Cost is the flat delivery fee for the zone. Unknown zones cost nothing.
func (z DeliveryZone) Cost() decimal.Decimal {
	switch z {
	case ZoneInside:
		return insideCost
	case ZoneOutside:
		return outsideCost
	}
	return decimal.Zero
}

type PaymentMethod string

const (
	PaymentStripe     PaymentMethod = "stripe"
	PaymentBkash      PaymentMethod = "bkash"
	PaymentSSLCommerz PaymentMethod = "sslcommerz"
	PaymentCOD        PaymentMethod = "cod"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentStripe, PaymentBkash, PaymentSSLCommerz, PaymentCOD:
		return true
	}
	return false
}

type Order struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	CustomerName      string          `json:"customerName"`
	PhoneNumber       string          `json:"phoneNumber"`
	ShippingAddress   string          `json:"shippingAddress"`
	DeliveryZone      DeliveryZone    `json:"deliveryZone"`
	DeliveryCost      decimal.Decimal `json:"deliveryCost"`
	Items             []cart.Item     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	Status            Status          `json:"status"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod,omitempty"`
	Courier           courier.ID      `json:"courier,omitempty"`
	CourierTrackingID string          `json:"courierTrackingId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Clone deep-copies the order so callers cannot reach into stored line items.
func (o Order) Clone() Order {
	items := make([]cart.Item, len(o.Items))
	for i, item := range o.Items {
		items[i] = item.Clone()
	}
	o.Items = items
	return o
}

// Total is the frozen price of items plus delivery.
func Total(items []cart.Item, zone DeliveryZone) decimal.Decimal {
	return cart.Subtotal(items).Add(zone.Cost())
}
