package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultCodeTTL is how long an e-mailed code stays valid.
const DefaultCodeTTL = 5 * time.Minute

// CodeService issues and checks the numeric codes sent by e-mail for
// address verification and password resets.
type CodeService struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

// With returns a copy bound to st, typically a transaction.
func (s *CodeService) With(st store.Store) *CodeService {
	cp := *s
	cp.Store = st
	return &cp
}

// Issue generates a fresh 6 digit code for (email, purpose), stores it and
// returns it. Earlier codes for the pair are left alone; see Replace.
func (s *CodeService) Issue(ctx context.Context, email string, purpose domain.CodePurpose) (string, error) {
	now := s.now()

	code, err := generateCode(email, now)
	if err != nil {
		return "", err
	}

	err = s.Store.OneTimeCodes().CreateCode(ctx, domain.OneTimeCode{
		ID:        idx.New().String(),
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// Replace drops every code for (email, purpose) and issues a new one, so at
// most one valid code per pair exists.
func (s *CodeService) Replace(ctx context.Context, email string, purpose domain.CodePurpose) (string, error) {
	if err := s.Consume(ctx, email, purpose); err != nil {
		return "", err
	}
	return s.Issue(ctx, email, purpose)
}

// Verify reports whether code is a live code for (email, purpose). Wrong,
// expired and exhausted codes all yield false.
func (s *CodeService) Verify(ctx context.Context, email, code string, purpose domain.CodePurpose) (bool, error) {
	_, err := s.Store.OneTimeCodes().FindValidCode(ctx, email, code, purpose, s.now())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// RecordFailure counts a wrong guess against the live codes for
// (email, purpose). It must run outside the transaction that rejected the
// guess, or the count is rolled back with it.
func (s *CodeService) RecordFailure(ctx context.Context, email string, purpose domain.CodePurpose) error {
	_, err := s.Store.OneTimeCodes().AddAttempt(ctx, email, purpose, s.now())
	return err
}

// Consume deletes the codes for (email, purpose). Codes issued for the other
// purpose survive.
func (s *CodeService) Consume(ctx context.Context, email string, purpose domain.CodePurpose) error {
	_, err := s.Store.OneTimeCodes().DeleteCodes(ctx, email, purpose)
	return err
}

func (s *CodeService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultCodeTTL
	}
	return s.TTL
}

func (s *CodeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// generateCode derives a TOTP value from a throwaway random secret. Only the
// digits are kept.
func generateCode(email string, now time.Time) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "lectern",
		AccountName: email,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate code secret: %w", err)
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), now, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return code, nil
}
