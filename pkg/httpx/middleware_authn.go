package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

// AuthnMiddleware verifies the bearer session token on protected routes.
// An expired session and a forged token both end in 401, but the
// WWW-Authenticate detail tells a well-behaved client whether to just log in
// again or to throw the token away as garbage.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token expired")
					return
				}
				writeBearerError(w, "token verification failed")
				log.Warn("session token verify failed", "err", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, claims)))
		})
	}
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID())
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
