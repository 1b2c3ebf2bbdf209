package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

const probeTimeout = 2 * time.Second

// schemaVersioner is implemented by drivers that track migrations.
type schemaVersioner interface {
	SchemaVersion() (uint, bool, error)
}

// readyz godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for its dependencies
//	@Description	Database, schema and signer failures make the service unready. Mail, media and the rate limiter store are reported but optional.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	lecternsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	lecternsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func (r *Router) readyz() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), probeTimeout)
		defer cancel()

		checks := &lecternsdk.HealthChecks{
			Database: "ok",
			Schema:   "ok",
			Signer:   "ok",
			Mail:     probe(ctx, r.MailProbe),
			Media:    probe(ctx, r.MediaProbe),
			Limiter:  probe(ctx, r.LimiterProbe),
		}
		status, code := "ok", http.StatusOK
		fail := func(check *string, msg string) {
			*check = "error: " + msg
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if err := r.store.Ping(ctx); err != nil {
			fail(&checks.Database, err.Error())
		}
		if sv, ok := r.store.(schemaVersioner); ok {
			version, dirty, err := sv.SchemaVersion()
			switch {
			case err != nil:
				fail(&checks.Schema, err.Error())
			case dirty:
				fail(&checks.Schema, fmt.Sprintf("version %d is dirty", version))
			case version == 0:
				fail(&checks.Schema, "no migrations applied")
			}
		}
		if !r.keys.IsReady() {
			fail(&checks.Signer, "no keys loaded")
		}

		httpx.WriteJSON(w, code, lecternsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(r.startTime).Round(time.Second).String(),
			Version: r.buildVersion,
			Checks:  checks,
		})
	}
}

// probe reports an optional dependency without affecting readiness.
func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
