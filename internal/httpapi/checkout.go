package httpapi

import (
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/order"
)

type phaseResponse struct {
	Phase checkout.Phase `json:"phase"`
	Step  int            `json:"step"`
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	q, err := h.checkout.Quote(sess, order.DeliveryZone(r.URL.Query().Get("zone")))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) CheckoutPhase(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	p := h.checkout.Phase(sess.ID)
	writeJSON(w, http.StatusOK, phaseResponse{Phase: p, Step: p.Step()})
}

// SubmitCheckout blocks for the whole phase sequence. Progress is pushed over the
// order websocket while it runs.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := currentSession(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// Unset selections fall back to the checkout defaults, so validation happens in Submit.
	var req checkout.Request
	if err := readJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	o, err := h.checkout.Submit(ctx, sess, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.rememberAddress(ctx, sess, req.Form)
	writeJSON(w, http.StatusCreated, o)
}
