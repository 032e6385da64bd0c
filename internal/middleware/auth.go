package middleware

import (
	"context"
	"net/http"

	"storefront-be/internal/apperr"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/session"
	"storefront-be/internal/transport"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

// SessionHeader carries a guest's session id between requests.
const SessionHeader = "X-Session-ID"

type TokenParser interface {
	ParseToken(token string) (*user.CustomClaims, error)
}

type SessionResolver interface {
	Resume(ctx context.Context, id string) (*session.Session, error)
}

// Auth resolves the shopper's session from the access token, or from the session
// header for guests, and attaches it (and the signed-in user) to the request context.
// Invalid tokens are treated as anonymous. A signed-in session is only reachable with
// a token for the same user.
func Auth(tokens TokenParser, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sessionID := r.Header.Get(SessionHeader)

			var claims *user.CustomClaims
			if tokenStr := auth.ExtractAccessToken(r); tokenStr != "" {
				c, err := tokens.ParseToken(tokenStr)
				if err != nil {
					logger.FromCtx(ctx).Debug("ignoring invalid access token", zap.Error(err))
				} else {
					claims = c
					sessionID = c.SessionID
				}
			}

			sess, err := sessions.Resume(ctx, sessionID)
			if err != nil {
				logger.FromCtx(ctx).Error("failed to resume session", zap.Error(err))
				apperr.WriteHTTP(w, apperr.Wrap(apperr.CodeInternal, err, ""))
				return
			}

			if u, ok := sess.User(); ok {
				if claims == nil || claims.UserID != u.ID {
					apperr.WriteHTTP(w, apperr.New(apperr.CodeUnauthorized, "session requires its access token"))
					return
				}
				ctx = transport.WithUser(ctx, u)
			}

			w.Header().Set(SessionHeader, sess.ID)
			ctx = transport.WithSession(ctx, sess)
			ctx = logger.WithSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := transport.UserFrom(r.Context()); !ok {
			apperr.WriteHTTP(w, apperr.New(apperr.CodeUnauthorized, "login required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := transport.UserFrom(r.Context())
		if !ok {
			apperr.WriteHTTP(w, apperr.New(apperr.CodeUnauthorized, "login required"))
			return
		}
		if !u.IsAdmin() {
			apperr.WriteHTTP(w, apperr.New(apperr.CodeForbidden, "admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
