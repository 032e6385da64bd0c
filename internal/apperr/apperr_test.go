package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("Wrap keeps the chain", func(t *testing.T) {
		err := Wrap(CodeDependency, cause, "courier sync failed")

		assert.Equal(t, "courier sync failed: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CodeDependency, err.Code())
	})

	t.Run("New without cause", func(t *testing.T) {
		err := New(CodeNotFound, "order not found")
		assert.Equal(t, "order not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("As finds wrapped error", func(t *testing.T) {
		inner := New(CodeValidation, "validation failed").WithDetails(map[string]string{"name": "is required"})
		outer := fmt.Errorf("checkout: %w", inner)

		got := As(outer)
		assert.NotNil(t, got)
		assert.Equal(t, map[string]string{"name": "is required"}, got.Details())
		assert.Nil(t, As(cause))
	})
}

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, MetadataFor(CodeDependency).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("BOGUS")).HTTPStatus)
}
