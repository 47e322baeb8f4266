package middleware

import (
	"net/http"

	"github.com/mstrand/todoapi/internal/auth"
)

// AuthHeader is the request header carrying the signed token.
const AuthHeader = "Auth"

// RequireAuth is the single authorization gate. A missing, invalid, or
// revoked token short-circuits with a bodyless 401; the wrapped handler
// only ever runs with a resolved Identity in the request context.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signed := r.Header.Get(AuthHeader)
			if signed == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, rec, err := svc.ResolveToken(signed)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{User: user, Token: rec})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
