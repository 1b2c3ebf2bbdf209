package slogx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/lectern/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "lectern", Version: "test", Env: "test", Format: "json", Output: &buf})

	var seenID string
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = slogx.RequestID(r.Context())
		slogx.FromContext(r.Context()).Error("boom", slogx.Err(errors.New("kaput")))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	t.Run("propagates the caller's request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/pot", nil)
		req.Header.Set(slogx.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get(slogx.RequestIDHeader))
		require.Equal(t, "abc-123", seenID)

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var handlerLine, accessLine map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
		require.NoError(t, json.Unmarshal(lines[1], &accessLine))

		require.Equal(t, "kaput", handlerLine["error"])
		require.Equal(t, "abc-123", handlerLine["req_id"])

		require.Equal(t, "http_request", accessLine["msg"])
		require.Equal(t, "WARN", accessLine["level"])
		require.EqualValues(t, http.StatusTeapot, accessLine["status"])
		require.EqualValues(t, len("short and stout"), accessLine["bytes"])
		require.Equal(t, "lectern", accessLine["service"])
	})

	t.Run("generates a request id when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pot", nil))
		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
		require.Equal(t, rec.Header().Get(slogx.RequestIDHeader), seenID)
	})
}
