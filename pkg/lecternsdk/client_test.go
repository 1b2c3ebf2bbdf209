package lecternsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "es", r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":   "validation",
			"message": "La solicitud contiene campos no válidos.",
			"fields":  map[string]string{"email": "Correo no válido."},
		})
	}))
	defer srv.Close()

	client := lecternsdk.NewClient(srv.URL + "/")
	client.Lang = "es"

	_, err := client.Register(context.Background(), lecternsdk.RegisterRequest{Email: "nope"})
	require.Error(t, err)
	require.True(t, lecternsdk.IsKind(err, lecternsdk.KindValidation))
	require.Equal(t, http.StatusBadRequest, lecternsdk.StatusCode(err))

	var apiErr *lecternsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Correo no válido.", apiErr.Fields["email"])
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := lecternsdk.NewClient(srv.URL).GetLiveness(context.Background())
	require.True(t, lecternsdk.IsKind(err, lecternsdk.KindInternal))
	require.Equal(t, http.StatusBadGateway, lecternsdk.StatusCode(err))
}

func TestSessionRefreshesExpiredToken(t *testing.T) {
	var refreshes atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		// Already inside the refresh margin, so the first call refreshes.
		writeJSON(w, http.StatusOK, lecternsdk.TokenResponse{AccessToken: "a1", RefreshToken: "r1", ExpiresIn: 10})
	})
	mux.HandleFunc("POST /v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req lecternsdk.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "r1", req.RefreshToken)
		refreshes.Add(1)
		writeJSON(w, http.StatusOK, lecternsdk.TokenResponse{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: 900})
	})
	mux.HandleFunc("GET /v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer a2", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, lecternsdk.UserResponse{ID: "u1", Role: "student"})
	})
	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, lecternsdk.MessageResponse{Message: "Signed out."})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	session, err := lecternsdk.NewClient(srv.URL).Login(ctx, "a@x.com", "P@ss1234")
	require.NoError(t, err)

	for range 2 {
		me, err := session.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, "u1", me.ID)
	}
	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, "r2", session.RefreshToken())

	require.NoError(t, session.Logout(ctx))
	require.ErrorIs(t, session.Logout(ctx), lecternsdk.ErrNoRefreshToken)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
