package validation

import (
	"testing"

	"storefront-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shipping struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Zone  string `json:"zone" validate:"oneof=inside outside"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(shipping{Name: "Rahim", Phone: "+8801", Zone: "inside"}))
	})

	t.Run("Reports json field names", func(t *testing.T) {
		err := Struct(shipping{Zone: "moon", Email: "nope"})
		require.Error(t, err)

		typed := apperr.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, apperr.CodeValidation, typed.Code())

		details := typed.Details().(map[string]string)
		assert.Equal(t, "is required", details["name"])
		assert.Equal(t, "is required", details["phone"])
		assert.Equal(t, "must be one of [inside outside]", details["zone"])
		assert.Equal(t, "must be a valid email", details["email"])
	})

	t.Run("Non struct", func(t *testing.T) {
		err := Struct(42)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code())
	})
}
