package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/apierr"
	"github.com/hokago/nichian/internal/auth"
	"github.com/hokago/nichian/internal/logger"
)

type ctxKey int

const sessionKey ctxKey = iota

// RequireStore is middleware: rejects requests without a valid session
// cookie with 401 and otherwise puts the session in the context.
func RequireStore(s *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.FromRequest(r)
			if err != nil {
				writeError(w, r, apierr.Unauthorized(msg("unauthenticated")))
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("store_id", sess.StoreID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentStore returns the session set by RequireStore.
func currentStore(r *http.Request) auth.Session {
	sess, _ := r.Context().Value(sessionKey).(auth.Session)
	return sess
}
