package lectern_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints checks both probes against a full deployment. Readiness
// reports the broker and Redis; object storage is not configured here.
func TestHealthEndpoints(t *testing.T) {
	s := setupStack(t, stackOptions{relaxedLimits: true})

	live, err := s.Client.GetLiveness(t.Context())
	assertHealthy(t, live, err)
	require.NotEmpty(t, live.Version)

	ready, err := s.Client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Schema)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.Equal(t, "ok", ready.Checks.Mail)
	require.Equal(t, "ok", ready.Checks.Limiter)
	require.Equal(t, "disabled", ready.Checks.Media)
}
