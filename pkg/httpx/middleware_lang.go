package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"golang.org/x/text/language"
)

// Localize resolves the response language once per request.
func Localize(fallback language.Tag) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := i18n.ResolveTag(r, fallback)
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), tag)))
		})
	}
}
