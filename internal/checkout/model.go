package checkout

import (
	"storefront-be/internal/courier"
	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
)

type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhasePaymentVerification Phase = "payment_verification"
	PhaseStockAllocation     Phase = "stock_allocation"
	PhaseCourierSync         Phase = "courier_sync"
	PhaseCompleted           Phase = "completed"
	PhaseFailed              Phase = "failed"
)

// Phases are the timed steps between Idle and Completed, in order.
var Phases = []Phase{PhasePaymentVerification, PhaseStockAllocation, PhaseCourierSync}

// Step is the 1-based progress indicator shown to the shopper; 0 when idle.
func (p Phase) Step() int {
	for i, ph := range Phases {
		if ph == p {
			return i + 1
		}
	}
	return 0
}

type Form struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type Request struct {
	Form
	DeliveryZone  order.DeliveryZone  `json:"deliveryZone" validate:"oneof=inside outside"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod" validate:"oneof=stripe bkash sslcommerz cod"`
	Courier       courier.ID          `json:"courier" validate:"oneof=pathao steadfast sundarban"`
}

// withDefaults fills the selections the checkout page preselects.
func (r Request) withDefaults() Request {
	if r.DeliveryZone == "" {
		r.DeliveryZone = order.ZoneInside
	}
	if r.PaymentMethod == "" {
		r.PaymentMethod = order.PaymentCOD
	}
	if r.Courier == "" {
		r.Courier = courier.Pathao
	}
	return r
}

type Quote struct {
	Subtotal     decimal.Decimal    `json:"subtotal"`
	DeliveryZone order.DeliveryZone `json:"deliveryZone"`
	DeliveryCost decimal.Decimal    `json:"deliveryCost"`
	Total        decimal.Decimal    `json:"total"`
}
