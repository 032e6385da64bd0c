package httpapi

import (
	"net/http"
)

type askRequest struct {
	Message   string `json:"message" validate:"required"`
	ProductID string `json:"productId,omitempty"`
}

// Ask forwards the shopper's question to the stylist with the catalog, or the focused
// product, as context. Model failures come back as a fallback answer.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	catalog, err := h.products.CatalogContext(ctx, req.ProductID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.assistant.Ask(ctx, req.Message, catalog))
}
