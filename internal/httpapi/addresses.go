package httpapi

import (
	"context"
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/apperr"
	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"
	"storefront-be/internal/session"
	"storefront-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	u, _ := transport.UserFrom(r.Context())
	addresses, err := h.addresses.List(r.Context(), u.ID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, err := addressID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	u, _ := transport.UserFrom(r.Context())
	if err := h.addresses.SetDefault(r.Context(), u.ID, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.ListAddresses(w, r)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := addressID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	u, _ := transport.UserFrom(r.Context())
	if err := h.addresses.Delete(r.Context(), u.ID, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func addressID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "addressID"))
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeValidation, err, "invalid address id")
	}
	return id, nil
}

// rememberAddress saves a signed-in shopper's checkout destination. Failures are
// logged only; the order is already placed.
func (h *Handler) rememberAddress(ctx context.Context, sess *session.Session, form checkout.Form) {
	u, ok := sess.User()
	if !ok || h.addresses == nil {
		return
	}
	_, err := h.addresses.Remember(ctx, u.ID, address.RememberInput{
		Name:    form.Name,
		Phone:   form.Phone,
		Address: form.Address,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to remember address", zap.String("user_id", u.ID), zap.Error(err))
	}
}
