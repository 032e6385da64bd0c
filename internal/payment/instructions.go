// Package payment describes the payment options offered at checkout and the steps
// a shopper follows for each. No money moves through here.
package payment

import (
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// CurrencySymbol prefixes rendered amounts.
const CurrencySymbol = "৳"

type Method struct {
	ID     order.PaymentMethod `json:"id"`
	Name   string              `json:"name"`
	Online bool                `json:"online"`
}

var methods = []Method{
	{ID: order.PaymentStripe, Name: "Card (Stripe)", Online: true},
	{ID: order.PaymentBkash, Name: "bKash", Online: true},
	{ID: order.PaymentSSLCommerz, Name: "SSLCommerz", Online: true},
	{ID: order.PaymentCOD, Name: "Cash on Delivery"},
}

var instructionMap = map[order.PaymentMethod][]string{
	order.PaymentCOD: {
		"Your order will be delivered to the shipping address",
		"Keep {{amount}} in cash ready when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},
	order.PaymentBkash: {
		"Open the bKash app and choose Payment",
		"Enter the merchant reference {{order_id}}",
		"Confirm the amount {{amount}} and enter your PIN",
		"Keep the transaction id until the order is shipped",
	},
	order.PaymentSSLCommerz: {
		"Continue to the SSLCommerz secure page",
		"Pick a card, mobile wallet or internet banking option",
		"Authorise {{amount}} for order {{order_id}}",
	},
	order.PaymentStripe: {
		"Enter your card number, expiry date and CVC",
		"Complete 3D Secure verification with your bank",
		"Wait until the charge of {{amount}} is confirmed",
	},
}

// Methods lists the checkout payment options in display order.
func Methods() []Method {
	return append([]Method(nil), methods...)
}

type InstructionVars map[string]string

// Instructions renders the steps for method with the order's amount and id.
func Instructions(method order.PaymentMethod, amount decimal.Decimal, orderID string) ([]string, error) {
	steps, ok := instructionMap[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return InjectVariables(steps, InstructionVars{
		"amount":   FormatAmount(amount),
		"order_id": orderID,
	}), nil
}

func FormatAmount(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))
	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}
	return result
}
