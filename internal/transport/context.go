// Package transport carries the resolved shopper session and identity through a request.
package transport

import (
	"context"

	"storefront-be/internal/session"
	"storefront-be/internal/user"
)

type ctxKey string

const (
	sessionKey ctxKey = "session"
	userKey    ctxKey = "user"
)

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFrom(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userKey).(user.User)
	return u, ok
}
