package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
)

// TokenService issues HS256 access tokens and opaque refresh tokens.
type TokenService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

// With returns a copy bound to st, typically a transaction.
func (s *TokenService) With(st store.Store) *TokenService {
	cp := *s
	cp.Store = st
	return &cp
}

// IssueAccessToken signs a short lived access token for u. Nothing is stored.
func (s *TokenService) IssueAccessToken(u domain.User) (string, error) {
	claims := jwtx.NewAccessClaims(
		u.ID,
		string(u.Role),
		u.Email,
		u.FullName,
		s.Issuer,
		s.accessTTL(),
		s.now(),
	)
	return s.Signer.Sign(claims)
}

// IssueRefreshToken creates and stores a refresh token for userID and returns
// its opaque value.
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	opaque, _, err := s.issueRefresh(ctx, userID)
	return opaque, err
}

func (s *TokenService) issueRefresh(ctx context.Context, userID string) (string, domain.RefreshToken, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.RefreshToken{}, err
	}

	now := s.now()
	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return "", domain.RefreshToken{}, err
	}
	return opaque, rt, nil
}

// IssuePair returns a new access token and refresh token for u.
func (s *TokenService) IssuePair(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, rt, err := s.issueRefresh(ctx, u.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "Bearer",
		ExpiresIn:        s.accessTTL(),
		RefreshExpiresAt: rt.ExpiresAt,
	}, nil
}

// VerifyRefreshToken looks token up by fingerprint. Unknown and expired
// tokens both yield ErrInvalidRefresh.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	if token == "" {
		return domain.RefreshToken{}, ErrInvalidRefresh
	}
	rt, err := s.Store.RefreshTokens().GetValidRefreshToken(ctx, cryptox.FingerprintToken(token), s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RefreshToken{}, ErrInvalidRefresh
		}
		return domain.RefreshToken{}, err
	}
	return rt, nil
}

// Revoke deletes token. Revoking an unknown token is not an error.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	_, err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, cryptox.FingerprintToken(token))
	return err
}

// RevokeAllForUser ends every session of userID.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := s.Store.RefreshTokens().DeleteUserRefreshTokens(ctx, userID)
	return err
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
