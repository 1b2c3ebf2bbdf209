package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalogsHaveTheSameKeys(t *testing.T) {
	for _, key := range i18n.Keys() {
		for _, tag := range i18n.Supported() {
			require.True(t, i18n.Has(tag, key), "%s missing %q", tag, key)
		}
	}
}

func TestTranslate(t *testing.T) {
	require.Equal(t, "Invalid e-mail or password.", i18n.Translate(language.English, "auth.invalid_credentials"))
	require.Equal(t, "Correo o contraseña incorrectos.", i18n.Translate(language.Spanish, "auth.invalid_credentials"))
	require.Equal(t, "no.such.key", i18n.Translate(language.English, "no.such.key"))
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   language.Tag
	}{
		{name: "fallback", target: "/", want: language.English},
		{name: "query", target: "/?lang=es", want: language.Spanish},
		{name: "query wins over header", target: "/?lang=en", accept: "es", want: language.English},
		{name: "cookie", target: "/", cookie: "es", want: language.Spanish},
		{name: "accept-language", target: "/", accept: "es-AR,es;q=0.9,en;q=0.5", want: language.Spanish},
		{name: "unsupported query falls through", target: "/?lang=de", accept: "es", want: language.Spanish},
		{name: "unsupported everything", target: "/?lang=xx", accept: "ja", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			require.Equal(t, tt.want, i18n.ResolveTag(r, language.English))
		})
	}
}
