package httpapi

import (
	"net/http"

	"storefront-be/internal/apperr"
	"storefront-be/internal/courier"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type statusRequest struct {
	Status order.Status `json:"status" validate:"required"`
}

const courierSyncPath = "/api/v1/courier/sync"

// MyOrders lists the signed-in user's orders, newest first.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := transport.UserFrom(r.Context())
	orders, err := h.orders.ListByUser(r.Context(), u.ID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type paymentResponse struct {
	OrderID      string              `json:"orderId"`
	Method       order.PaymentMethod `json:"method"`
	Amount       string              `json:"amount"`
	Instructions []string            `json:"instructions"`
}

// PaymentInstructions renders the payment steps for one of the caller's own orders.
func (h *Handler) PaymentInstructions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, _ := transport.UserFrom(ctx)

	o, err := h.orders.Get(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if o.UserID != u.ID {
		writeError(ctx, w, order.ErrOrderNotFound)
		return
	}

	steps, err := payment.Instructions(o.PaymentMethod, o.Total, o.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{
		OrderID:      o.ID,
		Method:       o.PaymentMethod,
		Amount:       payment.FormatAmount(o.Total),
		Instructions: steps,
	})
}

func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payment.Methods())
}

func (h *Handler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, courier.Services())
}

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	var status *order.Status
	if q := r.URL.Query().Get("status"); q != "" && q != "all" {
		s := order.Status(q)
		status = &s
	}
	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) AdminOrderStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.orders.CountByStatus(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AdminCourierSync books the order with its courier and logs the outbound call on
// the dashboard feed. The feed entry is best effort: a booked order is returned even
// when recording it fails.
func (h *Handler) AdminCourierSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "orderID")
	o, err := h.orders.SyncCourier(ctx, id)

	status := http.StatusOK
	if err != nil {
		status = apperr.MetadataFor(classify(err).Code()).HTTPStatus
	}
	if h.apiLog != nil {
		if _, simErr := h.apiLog.Simulate(ctx, http.MethodPost, courierSyncPath, status); simErr != nil {
			logger.FromCtx(ctx).Warn("failed to record courier sync call",
				zap.String("layer", "http"),
				zap.String("order_id", id),
				zap.Error(simErr),
			)
		}
	}

	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
