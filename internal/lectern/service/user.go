package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// AvatarStore presigns object storage URLs for avatars.
type AvatarStore interface {
	PresignUpload(ctx context.Context, key string) (string, time.Time, error)
	PresignDownload(ctx context.Context, key string) (string, time.Time, error)
}

// AvatarUpload tells the client where to PUT the image and which key to
// confirm afterwards.
type AvatarUpload struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type UserService struct {
	Store   store.Store
	Tokens  *TokenService
	Avatars AvatarStore // nil when object storage is not configured
	Now     func() time.Time
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

// UpdateProfile changes the display name.
func (s *UserService) UpdateProfile(ctx context.Context, userID, fullName string) (domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	f := fields{}
	f.text("full_name", fullName, MaxNameLength)
	if err := f.err(); err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateFullName(ctx, userID, fullName, s.now()); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return s.Get(ctx, userID)
}

func avatarPrefix(userID string) string { return "avatars/" + userID + "/" }

// AvatarUploadURL reserves a new object key under the user's prefix and
// presigns an upload to it.
func (s *UserService) AvatarUploadURL(ctx context.Context, userID string) (AvatarUpload, error) {
	if s.Avatars == nil {
		return AvatarUpload{}, ErrMediaUnavailable
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return AvatarUpload{}, err
	}

	key := avatarPrefix(userID) + idx.New().String()
	url, expires, err := s.Avatars.PresignUpload(ctx, key)
	if err != nil {
		return AvatarUpload{}, err
	}
	return AvatarUpload{Key: key, URL: url, ExpiresAt: expires}, nil
}

// SetAvatar records key as the user's avatar. The key must have been handed
// out by AvatarUploadURL for the same user.
func (s *UserService) SetAvatar(ctx context.Context, userID, key string) (domain.User, error) {
	if s.Avatars == nil {
		return domain.User{}, ErrMediaUnavailable
	}
	f := fields{}
	f.required("key", key)
	if err := f.err(); err != nil {
		return domain.User{}, err
	}
	rest, ok := strings.CutPrefix(key, avatarPrefix(userID))
	if !ok || !idx.Valid(rest) {
		return domain.User{}, ErrAvatarKey
	}

	if err := s.Store.Users().UpdateAvatarKey(ctx, userID, key, s.now()); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return s.Get(ctx, userID)
}

// AvatarURL presigns a download of u's avatar. It returns "" when there is no
// avatar or no object storage.
func (s *UserService) AvatarURL(ctx context.Context, u domain.User) (string, error) {
	if s.Avatars == nil || u.AvatarKey == "" {
		return "", nil
	}
	url, _, err := s.Avatars.PresignDownload(ctx, u.AvatarKey)
	return url, err
}

// Deactivate disables the account and ends all of its sessions.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().DeactivateUser(ctx, userID, s.now()); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		return s.Tokens.With(tx).RevokeAllForUser(ctx, userID)
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("user deactivated", slog.String("target_user_id", userID))
	return nil
}

// List returns users oldest first.
func (s *UserService) List(ctx context.Context, page store.Page) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, page)
}

// SetRole changes the role of userID. Admins cannot change their own role so
// the last admin cannot lock everyone out.
func (s *UserService) SetRole(ctx context.Context, actor Actor, userID string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		f := fields{}
		f.add("role", keyInvalidRole)
		return domain.User{}, f.err()
	}
	if actor.UserID == userID {
		return domain.User{}, ErrSelfRoleChange
	}

	if err := s.Store.Users().UpdateRole(ctx, userID, role, s.now()); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	slogx.FromContext(ctx).Info("user role changed",
		slog.String("target_user_id", userID),
		slog.String("role", string(role)),
	)
	return s.Get(ctx, userID)
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
