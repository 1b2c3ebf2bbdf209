package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTokenPair(t *testing.T) (jwtx.Signer, jwtx.Verifier) {
	t.Helper()
	ring, err := jwtx.NewKeyRing([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	return jwtx.NewSignerHS256(ring), jwtx.NewVerifierHS256(ring, "lectern", 0)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()
	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthnAndRequireRole(t *testing.T) {
	signer, verifier := newTokenPair(t)

	token := func(role string) string {
		tok, err := signer.Sign(jwtx.NewAccessClaims("user-1", role, "", "", "lectern", time.Minute, time.Now()))
		require.NoError(t, err)
		return tok
	}

	var seenUser, seenRole string
	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenUser, seenRole = httpx.UserID(r.Context()), httpx.Role(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
		httpx.AuthnMiddleware(verifier),
		httpx.RequireRole("teacher", "admin"),
	)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "role not allowed", header: "Bearer " + token("student"), want: http.StatusForbidden},
		{name: "teacher", header: "Bearer " + token("teacher"), want: http.StatusNoContent},
		{name: "admin", header: "Bearer " + token("admin"), want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			switch tt.want {
			case http.StatusUnauthorized:
				require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
				require.Equal(t, "unauthorized", decodeError(t, rec).Error)
			case http.StatusForbidden:
				require.Equal(t, "forbidden", decodeError(t, rec).Error)
			default:
				require.Equal(t, "user-1", seenUser)
				require.NotEmpty(t, seenRole)
			}
		})
	}
}

func TestRequireRoleWithoutAuthn(t *testing.T) {
	h := httpx.RequireRole()(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("outer"), nil, mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestWriteErrorLocalizes(t *testing.T) {
	errTaken := apperr.New(apperr.KindConflict, "auth.email_taken", "email taken")

	h := httpx.Localize(language.English)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, errTaken)
	}))

	req := httptest.NewRequest(http.MethodPost, "/?lang=es", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "es", rec.Header().Get("Content-Language"))
	body := decodeError(t, rec)
	require.Equal(t, "conflict", body.Error)
	require.Equal(t, "Ya existe una cuenta con este correo.", body.Message)
}

func TestWriteErrorValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	httpx.WriteError(rec, req, apperr.Validation(map[string]string{"email": "validation.email"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, "Must be a valid e-mail address.", body.Fields["email"])
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	httpx.WriteError(rec, req, errors.New("pq: password authentication failed for user secret"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "secret")
	require.Equal(t, "internal", decodeError(t, rec).Error)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}`))
		require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &p))
		require.Equal(t, "a@x.com", p.Email)
	})

	for name, body := range map[string]string{
		"empty":    ``,
		"garbage":  `{"email":`,
		"trailing": `{"email":"a@x.com"} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			var p payload
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}
