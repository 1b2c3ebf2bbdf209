package httpx

import (
	"context"

	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"golang.org/x/text/language"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
	CtxKeyClaims ctxKey = "claims"
)

// UserID returns the authenticated subject, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

// Role returns the authenticated role, or "".
func Role(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

// ClaimsFrom returns the verified access token claims.
func ClaimsFrom(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// WithLang stores the response language.
func WithLang(ctx context.Context, tag language.Tag) context.Context {
	return i18n.WithTag(ctx, tag)
}

// Lang returns the response language, English when unset.
func Lang(ctx context.Context) language.Tag {
	return i18n.FromContext(ctx)
}
