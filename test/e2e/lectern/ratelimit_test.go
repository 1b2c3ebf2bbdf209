package lectern_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

// TestRateLimitLogin uses the production limits, kept in Redis. Login is in
// the strict tier (5 per minute) keyed by client address and e-mail, so a
// different address still gets through.
func TestRateLimitLogin(t *testing.T) {
	s := setupStack(t, stackOptions{})
	ctx := t.Context()

	for i := range 5 {
		_, err := s.Client.Login(ctx, "victim@example.com", "Wrong12345")
		require.Error(t, err)
		require.NotEqual(t, http.StatusTooManyRequests, lecternsdk.StatusCode(err), "request %d should not be limited yet", i+1)
	}

	_, err := s.Client.Login(ctx, "victim@example.com", "Wrong12345")
	assertKind(t, err, lecternsdk.KindRateLimited, http.StatusTooManyRequests)

	_, err = s.Client.Login(ctx, "someone-else@example.com", "Wrong12345")
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)

	// Probes have their own, much larger budget.
	health, err := s.Client.GetLiveness(ctx)
	assertHealthy(t, health, err)
}
