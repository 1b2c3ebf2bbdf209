package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/mail"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// AuthService runs the account flows. Every flow that touches more than one
// row runs in a single transaction; e-mails go out after commit.
type AuthService struct {
	Store  store.Store
	Codes  *CodeService
	Tokens *TokenService
	Hasher *cryptox.PasswordHasher
	Mailer mail.Sender
	Now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// Register creates an inactive student and mails a verification code.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)

	f := fields{}
	f.email("email", email)
	f.password("password", password)
	f.text("full_name", fullName, MaxNameLength)
	if err := f.err(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var code string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken.Wrap(err)
			}
			return err
		}
		code, err = s.Codes.With(tx).Replace(ctx, email, domain.PurposeVerification)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))
	s.deliver(ctx, email, mail.TemplateVerifyEmail, code)
	return u, nil
}

// ResendVerification replaces the verification code of an inactive account.
// Unknown and already verified addresses succeed without sending anything.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	f := fields{}
	f.email("email", email)
	if err := f.err(); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case u.Active || u.DeactivatedAt != nil:
		return nil
	}

	var code string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		code, err = s.Codes.With(tx).Replace(ctx, email, domain.PurposeVerification)
		return err
	})
	if err != nil {
		return err
	}

	s.deliver(ctx, email, mail.TemplateVerifyEmail, code)
	return nil
}

// VerifyEmail activates the account when code is a live verification code.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	f := fields{}
	f.email("email", email)
	f.code("code", code)
	if err := f.err(); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		codes := s.Codes.With(tx)
		ok, err := codes.Verify(ctx, email, code, domain.PurposeVerification)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidCode
		}

		u, err := tx.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, ErrInvalidCode)
		}
		// A deactivated account is not brought back by an old code.
		if u.DeactivatedAt != nil {
			return ErrInvalidCode
		}
		if err := tx.Users().ActivateUser(ctx, u.ID, s.now()); err != nil {
			return err
		}
		return codes.Consume(ctx, email, domain.PurposeVerification)
	})
	return s.countFailure(ctx, err, email, domain.PurposeVerification)
}

// Login checks the credentials of an active account and opens a session.
// Unknown e-mail, inactive account and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	email = domain.NormalizeEmail(email)
	l := slogx.FromContext(ctx)

	f := fields{}
	f.required("email", email)
	f.required("password", password)
	if err := f.err(); err != nil {
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same argon2 cost as a real account.
			_ = s.Hasher.Verify(password, s.placeholderHash())
		}
		return domain.TokenPair{}, notFound(err, ErrInvalidCredentials)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.String("user_id", u.ID))
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}
	if !u.Active {
		l.Info("login refused for inactive user", slog.String("user_id", u.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	return s.Tokens.IssuePair(ctx, u)
}

// Refresh rotates a refresh token: the presented one is deleted and a new
// pair is issued in the same transaction.
func (s *AuthService) Refresh(ctx context.Context, token string) (domain.TokenPair, error) {
	var pair domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		tokens := s.Tokens.With(tx)

		rt, err := tokens.VerifyRefreshToken(ctx, token)
		if err != nil {
			return err
		}

		u, err := tx.Users().GetUserByID(ctx, rt.UserID)
		if err != nil {
			return notFound(err, ErrInvalidRefresh)
		}
		if !u.Active {
			return ErrInvalidRefresh
		}

		n, err := tx.RefreshTokens().DeleteRefreshToken(ctx, rt.TokenHash)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrInvalidRefresh
		}

		pair, err = tokens.IssuePair(ctx, u)
		return err
	})
	return pair, err
}

// Logout revokes the refresh token. It is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Tokens.Revoke(ctx, token)
}

// RequestPasswordReset mails a reset code to an active account. Unknown
// addresses succeed without sending anything.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	f := fields{}
	f.email("email", email)
	if err := f.err(); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case !u.Active:
		return nil
	}

	var code string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		code, err = s.Codes.With(tx).Replace(ctx, email, domain.PurposePasswordReset)
		return err
	})
	if err != nil {
		return err
	}

	s.deliver(ctx, email, mail.TemplatePasswordReset, code)
	return nil
}

// ResetPassword sets a new password when code is a live reset code. Every
// session of the account is ended.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	f := fields{}
	f.email("email", email)
	f.code("code", code)
	f.password("new_password", newPassword)
	if err := f.err(); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		codes := s.Codes.With(tx)
		ok, err := codes.Verify(ctx, email, code, domain.PurposePasswordReset)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidCode
		}

		u, err := tx.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return notFound(err, ErrInvalidCode)
		}
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, s.now()); err != nil {
			return err
		}
		if err := codes.Consume(ctx, email, domain.PurposePasswordReset); err != nil {
			return err
		}
		return s.Tokens.With(tx).RevokeAllForUser(ctx, u.ID)
	})
	return s.countFailure(ctx, err, email, domain.PurposePasswordReset)
}

// ChangePassword replaces the password of userID after checking the current
// one. All sessions are revoked and a fresh pair is returned for the caller.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, newPassword string) (domain.TokenPair, error) {
	f := fields{}
	f.required("current_password", current)
	f.password("new_password", newPassword)
	if err := f.err(); err != nil {
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, notFound(err, ErrUserNotFound)
	}
	if !u.Active {
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if err := s.Hasher.Verify(current, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.TokenPair{}, ErrWrongPassword
		}
		return domain.TokenPair{}, err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return domain.TokenPair{}, err
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, s.now()); err != nil {
			return err
		}
		tokens := s.Tokens.With(tx)
		if err := tokens.RevokeAllForUser(ctx, u.ID); err != nil {
			return err
		}
		pair, err = tokens.IssuePair(ctx, u)
		return err
	})
	return pair, err
}

// countFailure charges a rejected code against the live codes of the pair.
// It runs after the transaction that rejected it has rolled back.
func (s *AuthService) countFailure(ctx context.Context, err error, email string, purpose domain.CodePurpose) error {
	if !errors.Is(err, ErrInvalidCode) {
		return err
	}
	if ferr := s.Codes.RecordFailure(ctx, email, purpose); ferr != nil {
		slogx.FromContext(ctx).Warn("failed to record code attempt", slog.Any("error", ferr))
	}
	return err
}

// placeholderHash is verified against when no account matches, so unknown
// e-mails cost the same as wrong passwords.
func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(idx.New().String())
	})
	return s.dummyHash
}

// deliver hands a code to the mailer. Failures are logged only: the code is
// already stored and the user can ask for a new one.
func (s *AuthService) deliver(ctx context.Context, email string, tpl mail.Template, code string) {
	if s.Mailer == nil {
		return
	}
	msg := mail.Message{
		To:       email,
		Template: tpl,
		Locale:   i18n.FromContext(ctx).String(),
		Data:     map[string]string{"code": code},
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		slogx.FromContext(ctx).Error("mail delivery failed",
			slog.String("template", string(tpl)),
			slogx.Err(err),
		)
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
