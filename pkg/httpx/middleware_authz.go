package httpx

import (
	"net/http"
	"slices"

	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// RequireRole lets the request through when the authenticated role is one
// of allowed. An empty allowed list admits any authenticated caller.
// It must run after AuthnMiddleware.
func RequireRole(allowed ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(r.Context())
			if role == "" {
				WriteError(w, r, ErrUnauthenticated)
				return
			}
			if len(allowed) > 0 && !slices.Contains(allowed, role) {
				slogx.FromContext(r.Context()).Info("role not allowed", "allowed", allowed)
				WriteError(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
