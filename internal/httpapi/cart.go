package httpapi

import (
	"net/http"

	"storefront-be/internal/cart"

	"github.com/go-chi/chi/v5"
)

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type quantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type buyNowResponse struct {
	Next cart.NextStep `json:"next"`
	Cart cart.Summary  `json:"cart"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartSummary())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	err = sess.WithCart(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartSummary())
}

// AddCartItem adds one unit of the product as it is in the catalog right now.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := currentSession(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	p, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := sess.WithCart(func(c *cart.Cart) error { return c.AddToCart(p) }); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartSummary())
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id := chi.URLParam(r, "productID")
	err = sess.WithCart(func(c *cart.Cart) error {
		c.UpdateQuantity(id, req.Delta)
		return nil
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartSummary())
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess, err := currentSession(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id := chi.URLParam(r, "productID")
	err = sess.WithCart(func(c *cart.Cart) error {
		c.RemoveFromCart(id)
		return nil
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.CartSummary())
}

// BuyNow swaps the cart for a single unit and tells the client whether to sign in first.
func (h *Handler) BuyNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := currentSession(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	p, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	authenticated := sess.Authenticated()
	var next cart.NextStep
	err = sess.WithCart(func(c *cart.Cart) error {
		var err error
		next, err = c.BuyNow(p, authenticated)
		return err
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, buyNowResponse{Next: next, Cart: sess.CartSummary()})
}
