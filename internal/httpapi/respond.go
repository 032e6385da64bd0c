package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/apilog"
	"storefront-be/internal/apperr"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/session"
	"storefront-be/internal/transport"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	utils.WriteJSON(w, status, v)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	typed := classify(err)
	if typed.Code() == apperr.CodeInternal || typed.Code() == apperr.CodeDependency {
		logger.FromCtx(ctx).Error("request failed",
			zap.String("layer", "http"),
			zap.String("code", string(typed.Code())),
			zap.Error(err),
		)
	}
	apperr.WriteHTTP(w, typed)
}

// classify maps domain sentinels onto transport codes. Errors that already carry a
// code keep it.
func classify(err error) *apperr.Error {
	if e := apperr.As(err); e != nil {
		return e
	}

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return apperr.Wrap(apperr.CodeNotFound, err, err.Error())

	case errors.Is(err, order.ErrNoCourier),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, checkout.ErrInsufficientStock):
		return apperr.Wrap(apperr.CodeStateConflict, err, err.Error())

	case errors.Is(err, order.ErrCourierSyncFailed),
		errors.Is(err, checkout.ErrPhaseFailed):
		return apperr.Wrap(apperr.CodeDependency, err, "")

	case errors.Is(err, product.ErrProductExists),
		errors.Is(err, order.ErrOrderExists),
		errors.Is(err, checkout.ErrCheckoutInProgress):
		return apperr.Wrap(apperr.CodeConflict, err, err.Error())

	case errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, product.ErrInvalidSort),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, checkout.ErrInvalidForm),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, apilog.ErrInvalidTech),
		errors.Is(err, payment.ErrUnknownMethod),
		errors.Is(err, address.ErrInvalidAddress):
		return apperr.Wrap(apperr.CodeValidation, err, err.Error())

	case errors.Is(err, user.ErrInvalidToken),
		errors.Is(err, user.ErrUnexpectedSign):
		return apperr.Wrap(apperr.CodeUnauthorized, err, "")
	}

	return apperr.Wrap(apperr.CodeInternal, err, "")
}

// decodeJSON reads a single JSON object into dest and validates it.
func decodeJSON(r *http.Request, dest any) error {
	if err := readJSON(r, dest); err != nil {
		return err
	}
	return validation.Struct(dest)
}

func readJSON(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "invalid request body").
			WithDetails(map[string]string{"body": err.Error()})
	}
	return nil
}

func currentSession(r *http.Request) (*session.Session, error) {
	sess := transport.SessionFrom(r.Context())
	if sess == nil {
		return nil, apperr.New(apperr.CodeInternal, "session not resolved")
	}
	return sess, nil
}
