package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
)

type codesRepo struct {
	q *gen.Queries
}

func (r *codesRepo) CreateCode(ctx context.Context, c domain.OneTimeCode) error {
	return r.q.CreateOneTimeCode(ctx, gen.CreateOneTimeCodeParams{
		ID:        c.ID,
		Email:     c.Email,
		Code:      c.Code,
		Purpose:   string(c.Purpose),
		CreatedAt: utc(c.CreatedAt),
		ExpiresAt: utc(c.ExpiresAt),
	})
}

func (r *codesRepo) FindValidCode(
	ctx context.Context,
	email, code string,
	purpose domain.CodePurpose,
	now time.Time,
) (domain.OneTimeCode, error) {
	row, err := r.q.FindValidOneTimeCode(ctx, gen.FindValidOneTimeCodeParams{
		Email:     email,
		Code:      code,
		Purpose:   string(purpose),
		ExpiresAt: utc(now),
		Attempts:  domain.MaxCodeAttempts,
	})
	if err != nil {
		return domain.OneTimeCode{}, mapNotFound(err)
	}
	return mapOneTimeCode(row), nil
}

func (r *codesRepo) AddAttempt(ctx context.Context, email string, purpose domain.CodePurpose, now time.Time) (int64, error) {
	return r.q.AddOneTimeCodeAttempt(ctx, gen.AddOneTimeCodeAttemptParams{
		Email:     email,
		Purpose:   string(purpose),
		ExpiresAt: utc(now),
	})
}

func (r *codesRepo) DeleteCodes(ctx context.Context, email string, purpose domain.CodePurpose) (int64, error) {
	return r.q.DeleteOneTimeCodes(ctx, gen.DeleteOneTimeCodesParams{Email: email, Purpose: string(purpose)})
}

func (r *codesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredOneTimeCodes(ctx, utc(now))
}

type refreshTokensRepo struct {
	q *gen.Queries
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	err := r.q.CreateRefreshToken(ctx, gen.CreateRefreshTokenParams{
		ID:        t.ID,
		TokenHash: t.TokenHash,
		UserID:    t.UserID,
		ExpiresAt: utc(t.ExpiresAt),
		CreatedAt: utc(t.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetValidRefreshToken(
	ctx context.Context,
	hash string,
	now time.Time,
) (domain.RefreshToken, error) {
	row, err := r.q.GetValidRefreshToken(ctx, gen.GetValidRefreshTokenParams{
		TokenHash: hash,
		ExpiresAt: utc(now),
	})
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return mapRefreshToken(row), nil
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, hash string) (int64, error) {
	return r.q.DeleteRefreshToken(ctx, hash)
}

func (r *refreshTokensRepo) DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error) {
	return r.q.DeleteUserRefreshTokens(ctx, userID)
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredRefreshTokens(ctx, utc(now))
}
