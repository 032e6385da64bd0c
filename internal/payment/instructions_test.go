package payment

import (
	"strings"
	"testing"

	"storefront-be/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethods(t *testing.T) {
	list := Methods()
	require.Len(t, list, 4)
	for _, m := range list {
		assert.True(t, m.ID.Valid(), m.ID)
		assert.Contains(t, instructionMap, m.ID)
	}

	list[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Methods()[0].Name)
}

func TestInstructions(t *testing.T) {
	t.Run("Renders amount and order id", func(t *testing.T) {
		steps, err := Instructions(order.PaymentBkash, decimal.RequireFromString("329.99"), "AB12CD")
		require.NoError(t, err)

		joined := strings.Join(steps, "\n")
		assert.Contains(t, joined, "৳329.99")
		assert.Contains(t, joined, "AB12CD")
		assert.NotContains(t, joined, "{{")
	})

	t.Run("Cash on delivery", func(t *testing.T) {
		steps, err := Instructions(order.PaymentCOD, decimal.NewFromInt(80), "X")
		require.NoError(t, err)
		assert.Contains(t, steps[1], "৳80.00")
	})

	t.Run("Unknown method", func(t *testing.T) {
		_, err := Instructions("paypal", decimal.Zero, "X")
		assert.ErrorIs(t, err, ErrUnknownMethod)
	})
}

func TestInjectVariables(t *testing.T) {
	t.Run("ReplacesPlaceholders", func(t *testing.T) {
		template := []string{"Pay {{amount}} for {{order_id}} before {{expiry}}."}
		vars := InstructionVars{"amount": "৳100.00", "order_id": "ABC123", "expiry": "tomorrow"}

		result := InjectVariables(template, vars)
		assert.Equal(t, []string{"Pay ৳100.00 for ABC123 before tomorrow."}, result)
	})

	t.Run("LeavesMissingVariables", func(t *testing.T) {
		result := InjectVariables([]string{"Pay {{amount}}"}, InstructionVars{})
		assert.Equal(t, "Pay {{amount}}", result[0])
	})
}
