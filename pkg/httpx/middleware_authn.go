package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

var (
	ErrUnauthenticated = apperr.New(apperr.KindUnauthorized, "auth.unauthenticated", "missing or invalid access token")
	ErrForbidden       = apperr.New(apperr.KindForbidden, "auth.forbidden", "role not allowed")
)

// AuthnMiddleware requires a valid bearer access token and stores its claims
// in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer`)
				WriteError(w, r, ErrUnauthenticated)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("access token rejected", slogx.Err(err))
				writeBearerError(w, "token verification failed")
				WriteError(w, r, ErrUnauthenticated.Wrap(err))
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithAttrs(ctx, "user_id", claims.Subject, "role", claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 challenge for a rejected bearer token.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}
