package app

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

func testConfig(t *testing.T, dir string) Config {
	t.Helper()
	cfg, err := parseConfig(env.Options{Environment: map[string]string{
		"ENV":                      "test",
		"LOG_LEVEL":                "error",
		"JWT_SECRET":               testSecret,
		"DATABASE_FILE":            filepath.Join(dir, "lectern.db"),
		"PEPPER_FILE":              filepath.Join(dir, "pepper"),
		"BOOTSTRAP_ADMIN_EMAIL":    "root@example.com",
		"BOOTSTRAP_ADMIN_PASSWORD": "Sup3rSecret",
		"DEFAULT_LOCALE":           "es",
	}})
	require.NoError(t, err)
	return cfg
}

func TestNewBootstrapsAndServes(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	app, err := New(cfg)
	require.NoError(t, err)
	app.housekeepingService.Start()

	srv := httptest.NewServer(app.server.Handler)
	client := lecternsdk.NewClient(srv.URL)

	session, err := client.Login(t.Context(), "root@example.com", "Sup3rSecret")
	require.NoError(t, err)
	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", me.Role)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "disabled", ready.Checks.Mail)
	require.Equal(t, "disabled", ready.Checks.Media)
	require.Equal(t, "disabled", ready.Checks.Limiter)

	_, err = client.Login(t.Context(), "root@example.com", "wrong-password1")
	var apiErr *lecternsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Correo o contraseña incorrectos.", apiErr.Message, "DEFAULT_LOCALE selects the fallback language")

	srv.Close()
	require.NoError(t, app.Shutdown())

	// A restart on the same database keeps the existing admin.
	again, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.db.Close() })

	users, err := again.userService.List(t.Context(), store.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
}
