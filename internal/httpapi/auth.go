package httpapi

import (
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/transport"
	"storefront-be/internal/user"
)

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	User      user.User `json:"user"`
	CartCount int       `json:"cartCount"`
}

// Login signs the current session in. The guest cart carries over.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := currentSession(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, u, err := h.users.Login(ctx, req.Email, sess.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.sessions.Login(ctx, sess, u); err != nil {
		writeError(ctx, w, err)
		return
	}

	auth.SetAccessTokenCookie(w, token, user.TokenTTL, h.secure)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		SessionID: sess.ID,
		User:      u,
		CartCount: sess.CartSummary().Count,
	})
}

// Logout clears the identity and the cart.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := currentSession(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.sessions.Logout(ctx, sess); err != nil {
		writeError(ctx, w, err)
		return
	}
	auth.ClearAccessTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := transport.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, u)
}
