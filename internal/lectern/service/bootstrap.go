package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

var ErrBootstrapAlready = errors.New("system already bootstrapped")

// BootstrapService creates the first administrator. Everyone else registers
// as a student and is promoted by an admin.
type BootstrapService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Now    func() time.Time
}

// IsBootstrapped reports whether any user exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates an active admin from req on an empty database and
// returns its id. It fails with ErrBootstrapAlready once any user exists.
func (s *BootstrapService) Bootstrap(ctx context.Context, req domain.BootstrapData) (string, error) {
	l := slogx.FromContext(ctx)

	email := domain.NormalizeEmail(req.AdminEmail)
	name := strings.TrimSpace(req.AdminName)
	if name == "" {
		name = "Administrator"
	}

	f := fields{}
	f.email("admin_email", email)
	f.password("admin_password", req.AdminPassword)
	f.maxLen("admin_name", name, MaxNameLength)
	if err := f.err(); err != nil {
		return "", err
	}

	hash, err := s.Hasher.Hash(req.AdminPassword)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The emptiness check and the insert share a transaction so two
	// replicas starting together cannot both create an admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if !errors.Is(err, ErrBootstrapAlready) {
			l.Error("failed to create admin user", slogx.Err(err))
		}
		return "", err
	}

	l.Info("bootstrapped admin user", slog.String("admin_user_id", admin.ID))
	return admin.ID, nil
}
