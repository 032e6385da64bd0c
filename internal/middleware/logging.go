package middleware

import (
	"net/http"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/transport"

	"go.uber.org/zap"
)

// AdminAudit records every state-changing admin request with the acting user.
func AdminAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &logger.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, r)

		u, _ := transport.UserFrom(r.Context())
		logger.FromCtx(r.Context()).Info("admin action",
			zap.String("user_id", u.ID),
			zap.String("email", u.Email),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.Status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
