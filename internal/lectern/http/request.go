package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/idx"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// actor is the caller as established by AuthnMiddleware.
func actor(r *http.Request) service.Actor {
	ctx := r.Context()
	return service.Actor{
		UserID: httpx.UserID(ctx),
		Role:   domain.Role(httpx.Role(ctx)),
	}
}

// pathID reads a ULID path parameter.
func pathID(r *http.Request, name string) (string, error) {
	v := r.PathValue(name)
	if !idx.Valid(v) {
		return "", apperr.Validation(map[string]string{name: "validation.invalid_id"})
	}
	return v, nil
}

// parsePage reads ?limit= and ?offset=. The limit is clamped to maxPageLimit.
func parsePage(r *http.Request) (store.Page, error) {
	page := store.Page{Limit: defaultPageLimit}
	fields := map[string]string{}

	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["limit"] = "validation.page"
		} else if n > 0 {
			page.Limit = min(n, maxPageLimit)
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["offset"] = "validation.page"
		} else {
			page.Offset = n
		}
	}

	if len(fields) > 0 {
		return store.Page{}, apperr.Validation(fields)
	}
	return page, nil
}
